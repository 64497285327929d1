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
	"github.com/earthcare/network/pkg/statemachine"
)

// InviteState 联系人邀请状态，只允许向前流转
type InviteState string

const (
	InviteNotInvited InviteState = "not_invited"
	InviteInvited    InviteState = "invited"
	InviteSignedUp   InviteState = "signed_up"
	InviteActive     InviteState = "active"
)

// InviteChart 邀请状态流转图: not_invited → invited → signed_up → active
var InviteChart = statemachine.NewChart(InviteNotInvited).
	Allow(InviteNotInvited, InviteInvited).
	Allow(InviteInvited, InviteSignedUp).
	Allow(InviteSignedUp, InviteActive)

// Contact 联系人表。一个联系人最多通过一个有效邀请触发一次认领。
type Contact struct {
	BaseModel
	ContactId    string      `gorm:"column:contact_id;uniqueIndex" json:"contactId"`
	EnterpriseId string      `gorm:"column:enterprise_id;index" json:"enterpriseId"`
	FullName     string      `gorm:"column:full_name" json:"fullName"`
	Email        string      `gorm:"column:email;index" json:"email"`
	Phone        string      `gorm:"column:phone" json:"phone"`
	Title        string      `gorm:"column:title" json:"title"` // job title
	InviteStatus InviteState `gorm:"column:invite_status;index" json:"invitationStatus"`
	ClaimStatus  ClaimState  `gorm:"column:claim_status" json:"claimStatus"`
	LeadScore    int         `gorm:"column:lead_score" json:"leadScore"` // 0-100, AI 评分
}

func (Contact) TableName() string {
	return "t_contact"
}

// CreateContactReq create contact request
type CreateContactReq struct {
	EnterpriseId string `json:"enterpriseId" validate:"required"`
	FullName     string `json:"fullName" validate:"required,min=1,max=128"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Title        string `json:"title"`
}

// UpdateContactReq update contact request
type UpdateContactReq struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Title    *string `json:"title,omitempty"`
}

// ContactResp contact response
type ContactResp struct {
	ContactId    string      `json:"contactId"`
	EnterpriseId string      `json:"enterpriseId"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Title        string      `json:"title"`
	InviteStatus InviteState `json:"invitationStatus"`
	ClaimStatus  ClaimState  `json:"claimStatus"`
	LeadScore    int         `json:"leadScore"`
}

func ToContactResp(c *Contact) *ContactResp {
	return &ContactResp{
		ContactId:    c.ContactId,
		EnterpriseId: c.EnterpriseId,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		Title:        c.Title,
		InviteStatus: c.InviteStatus,
		ClaimStatus:  c.ClaimStatus,
		LeadScore:    c.LeadScore,
	}
}
