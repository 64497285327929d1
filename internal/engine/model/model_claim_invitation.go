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

import (
	"time"

	"github.com/earthcare/network/pkg/statemachine"
)

// InvitationState 认领邀请生命周期状态
type InvitationState string

const (
	InvitationPending  InvitationState = "pending"
	InvitationAccepted InvitationState = "accepted"
	InvitationExpired  InvitationState = "expired"
)

// InvitationChart 邀请生命周期: pending → accepted | expired，均为终态
var InvitationChart = statemachine.NewChart(InvitationPending).
	Allow(InvitationPending, InvitationAccepted, InvitationExpired)

// ClaimInvitation 认领邀请表。归属企业，生命周期止于接受或过期。
type ClaimInvitation struct {
	BaseModel
	InvitationId string          `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`
	EnterpriseId string          `gorm:"column:enterprise_id;index:idx_enterprise_contact" json:"enterpriseId"`
	ContactId    string          `gorm:"column:contact_id;index:idx_enterprise_contact" json:"contactId"`
	Token        string          `gorm:"column:token;uniqueIndex" json:"-"` // 不可猜测的认领令牌，不回传
	InvitedEmail string          `gorm:"column:invited_email" json:"invitedEmail"`
	InvitedBy    string          `gorm:"column:invited_by" json:"invitedBy"`
	Status       InvitationState `gorm:"column:status;index" json:"status"`
	InvitedAt    time.Time       `gorm:"column:invited_at" json:"invitedAt"`
	ExpiresAt    time.Time       `gorm:"column:expires_at;index" json:"expiresAt"`
}

func (ClaimInvitation) TableName() string {
	return "t_claim_invitation"
}

// IsExpired reports whether the invitation is past its deadline.
// The stored status can lag behind the clock; always check against now.
func (i *ClaimInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsAcceptable reports whether the invitation can still be accepted.
func (i *ClaimInvitation) IsAcceptable(now time.Time) bool {
	return i.Status == InvitationPending && !i.IsExpired(now)
}

// CreateInvitationReq create claim invitation request
type CreateInvitationReq struct {
	EnterpriseId string `json:"enterpriseId" validate:"required"`
	PersonId     string `json:"personId" validate:"required"`
	TTLHours     int    `json:"ttlHours"` // 为空时使用默认值
}

// UpdateInvitationReq admin-only status updates for a contact
type UpdateInvitationReq struct {
	InvitationStatus *InviteState `json:"invitationStatus,omitempty"`
	ClaimStatus      *ClaimState  `json:"claimStatus,omitempty"`
}

// InvitationResp invitation response. Token 仅在创建时返回一次。
type InvitationResp struct {
	InvitationId string          `json:"invitationId"`
	EnterpriseId string          `json:"enterpriseId"`
	ContactId    string          `json:"contactId"`
	InvitedEmail string          `json:"invitedEmail"`
	Status       InvitationState `json:"status"`
	InvitedAt    time.Time       `json:"invitedAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Token        string          `json:"token,omitempty"`
}

func ToInvitationResp(i *ClaimInvitation) *InvitationResp {
	return &InvitationResp{
		InvitationId: i.InvitationId,
		EnterpriseId: i.EnterpriseId,
		ContactId:    i.ContactId,
		InvitedEmail: i.InvitedEmail,
		Status:       i.Status,
		InvitedAt:    i.InvitedAt,
		ExpiresAt:    i.ExpiresAt,
	}
}

// ClaimPreviewResp claim preview payload: enterprise + invitation metadata
type ClaimPreviewResp struct {
	Enterprise *EnterpriseResp `json:"enterprise"`
	Contact    *ContactResp    `json:"contact"`
	Invitation *InvitationResp `json:"invitation"`
}
