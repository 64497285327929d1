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

// ClaimState 认领状态，只允许向前流转
type ClaimState string

const (
	ClaimUnclaimed ClaimState = "unclaimed"
	ClaimClaimed   ClaimState = "claimed"
	ClaimVerified  ClaimState = "verified" // 管理员核验，区别于认领
)

// ClaimChart 认领状态流转图: unclaimed → claimed → verified
var ClaimChart = statemachine.NewChart(ClaimUnclaimed).
	Allow(ClaimUnclaimed, ClaimClaimed).
	Allow(ClaimClaimed, ClaimVerified)

// EnterpriseCategory 目录分类
type EnterpriseCategory string

const (
	CategoryRegenerativeAg EnterpriseCategory = "regenerative_agriculture"
	CategoryRenewableEnergy EnterpriseCategory = "renewable_energy"
	CategoryCircularEconomy EnterpriseCategory = "circular_economy"
	CategorySocialEnterprise EnterpriseCategory = "social_enterprise"
	CategoryConservation    EnterpriseCategory = "conservation"
	CategoryEducation       EnterpriseCategory = "education"
	CategoryOther           EnterpriseCategory = "other"
)

// Enterprise 企业档案表。目录种子或 CRM 创建，认领/核验时更新，不做硬删除。
type Enterprise struct {
	BaseModel
	EnterpriseId string             `gorm:"column:enterprise_id;uniqueIndex" json:"enterpriseId"`
	Name         string             `gorm:"column:name;index" json:"name"`
	Category     EnterpriseCategory `gorm:"column:category;index" json:"category"`
	Description  string             `gorm:"column:description" json:"description"`
	Website      string             `gorm:"column:website" json:"website"`
	Location     string             `gorm:"column:location" json:"location"`
	ClaimStatus  ClaimState         `gorm:"column:claim_status;index" json:"claimStatus"`
	OwnerUserId  string             `gorm:"column:owner_user_id" json:"ownerUserId"` // 未认领时为空
	IsEnabled    int                `gorm:"column:is_enabled" json:"isEnabled"`      // 0: disabled, 1: enabled
}

func (Enterprise) TableName() string {
	return "t_enterprise"
}

// CreateEnterpriseReq create enterprise request
type CreateEnterpriseReq struct {
	Name        string             `json:"name" validate:"required,min=2,max=128"`
	Category    EnterpriseCategory `json:"category" validate:"required"`
	Description string             `json:"description"`
	Website     string             `json:"website"`
	Location    string             `json:"location"`
}

// UpdateEnterpriseReq update enterprise request
type UpdateEnterpriseReq struct {
	Name        *string             `json:"name,omitempty"`
	Category    *EnterpriseCategory `json:"category,omitempty"`
	Description *string             `json:"description,omitempty"`
	Website     *string             `json:"website,omitempty"`
	Location    *string             `json:"location,omitempty"`
}

// EnterpriseQueryReq query enterprise request
type EnterpriseQueryReq struct {
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	ClaimStatus string `json:"claimStatus" form:"claimStatus"`
	Page        int    `json:"page" form:"page"`
	PageSize    int    `json:"pageSize" form:"pageSize"`
}

// EnterpriseResp enterprise response
type EnterpriseResp struct {
	EnterpriseId string             `json:"enterpriseId"`
	Name         string             `json:"name"`
	Category     EnterpriseCategory `json:"category"`
	Description  string             `json:"description"`
	Website      string             `json:"website"`
	Location     string             `json:"location"`
	ClaimStatus  ClaimState         `json:"claimStatus"`
	OwnerUserId  string             `json:"ownerUserId,omitempty"`
}

func ToEnterpriseResp(e *Enterprise) *EnterpriseResp {
	return &EnterpriseResp{
		EnterpriseId: e.EnterpriseId,
		Name:         e.Name,
		Category:     e.Category,
		Description:  e.Description,
		Website:      e.Website,
		Location:     e.Location,
		ClaimStatus:  e.ClaimStatus,
		OwnerUserId:  e.OwnerUserId,
	}
}
