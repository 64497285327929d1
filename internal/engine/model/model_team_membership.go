// Copyright 2026 Earth Care Network Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "time"

// MemberRole 团队成员角色，封闭集合，权限查表而非散落的字符串比较
type MemberRole string

const (
	RoleViewer MemberRole = "viewer" // 仅查看
	RoleEditor MemberRole = "editor" // 编辑档案内容
	RoleAdmin  MemberRole = "admin"  // 管理成员
	RoleOwner  MemberRole = "owner"  // 完全控制
)

// RoleCapability 角色能力表
type RoleCapability struct {
	CanView          bool
	CanEditProfile   bool
	CanManageMembers bool
	CanTransferOwner bool
}

var roleCapabilities = map[MemberRole]RoleCapability{
	RoleViewer: {CanView: true},
	RoleEditor: {CanView: true, CanEditProfile: true},
	RoleAdmin:  {CanView: true, CanEditProfile: true, CanManageMembers: true},
	RoleOwner:  {CanView: true, CanEditProfile: true, CanManageMembers: true, CanTransferOwner: true},
}

// Capability returns the capability row for the role. Unknown roles get the
// zero capability (no access).
func (r MemberRole) Capability() RoleCapability {
	return roleCapabilities[r]
}

// Valid reports whether the role belongs to the closed set.
func (r MemberRole) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// TeamMembership 团队成员表。
// 不变式: 任何至少有一名成员的企业必须始终保留至少一名 owner。
type TeamMembership struct {
	BaseModel
	MemberId     string     `gorm:"column:member_id;uniqueIndex" json:"memberId"`
	EnterpriseId string     `gorm:"column:enterprise_id;not null;index:idx_enterprise_user,unique" json:"enterpriseId"`
	UserId       string     `gorm:"column:user_id;not null;index:idx_enterprise_user,unique" json:"userId"`
	Role         MemberRole `gorm:"column:role;not null" json:"role"`
	JoinDate     time.Time  `gorm:"column:join_date" json:"joinDate"`
}

func (TeamMembership) TableName() string {
	return "t_team_membership"
}

// ChangeRoleReq role change request
type ChangeRoleReq struct {
	Role MemberRole `json:"role" validate:"required"`
}

// MembershipResp membership response
type MembershipResp struct {
	MemberId     string     `json:"memberId"`
	EnterpriseId string     `json:"enterpriseId"`
	UserId       string     `json:"userId"`
	Role         MemberRole `json:"role"`
	JoinDate     time.Time  `json:"joinDate"`
}

func ToMembershipResp(m *TeamMembership) *MembershipResp {
	return &MembershipResp{
		MemberId:     m.MemberId,
		EnterpriseId: m.EnterpriseId,
		UserId:       m.UserId,
		Role:         m.Role,
		JoinDate:     m.JoinDate,
	}
}
