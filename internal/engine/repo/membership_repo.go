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

package repo

import (
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type IMembershipRepository interface {
	AddMember(m *model.TeamMembership) error
	GetMemberById(memberId string) (*model.TeamMembership, error)
	GetMemberByUser(enterpriseId, userId string) (*model.TeamMembership, error)
	ListMembers(enterpriseId string) ([]model.TeamMembership, error)
	CountMembers(enterpriseId string) (int64, error)
	CountOwners(enterpriseId string) (int64, error)
	UpdateMemberRole(memberId string, role model.MemberRole) error
	RemoveMember(memberId string) error
}

type MembershipRepo struct {
	db database.DB
}

func NewMembershipRepo(db database.DB) IMembershipRepository {
	return &MembershipRepo{db: db}
}

// AddMember 添加团队成员
func (r *MembershipRepo) AddMember(m *model.TeamMembership) error {
	return r.db.DB().Create(m).Error
}

// GetMemberById 根据成员ID获取成员
func (r *MembershipRepo) GetMemberById(memberId string) (*model.TeamMembership, error) {
	var m model.TeamMembership
	err := r.db.DB().Where("member_id = ?", memberId).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMemberByUser 获取用户在企业中的成员记录
func (r *MembershipRepo) GetMemberByUser(enterpriseId, userId string) (*model.TeamMembership, error) {
	var m model.TeamMembership
	err := r.db.DB().Where("enterprise_id = ? AND user_id = ?", enterpriseId, userId).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMembers 列出企业团队成员
func (r *MembershipRepo) ListMembers(enterpriseId string) ([]model.TeamMembership, error) {
	var members []model.TeamMembership
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).
		Order("join_date ASC").Find(&members).Error
	return members, err
}

// CountMembers 统计企业团队成员数量
func (r *MembershipRepo) CountMembers(enterpriseId string) (int64, error) {
	var count int64
	err := r.db.DB().Model(&model.TeamMembership{}).
		Where("enterprise_id = ?", enterpriseId).Count(&count).Error
	return count, err
}

// CountOwners 统计企业 owner 数量。最后一名 owner 的降级与移除由服务层据此拒绝。
func (r *MembershipRepo) CountOwners(enterpriseId string) (int64, error) {
	var count int64
	err := r.db.DB().Model(&model.TeamMembership{}).
		Where("enterprise_id = ? AND role = ?", enterpriseId, model.RoleOwner).
		Count(&count).Error
	return count, err
}

// UpdateMemberRole 更新成员角色
func (r *MembershipRepo) UpdateMemberRole(memberId string, role model.MemberRole) error {
	return r.db.DB().Model(&model.TeamMembership{}).
		Where("member_id = ?", memberId).
		Update("role", role).Error
}

// RemoveMember 移除团队成员
func (r *MembershipRepo) RemoveMember(memberId string) error {
	return r.db.DB().Where("member_id = ?", memberId).
		Delete(&model.TeamMembership{}).Error
}
