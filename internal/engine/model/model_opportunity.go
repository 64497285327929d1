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

// OpportunityStage 销售机会阶段
type OpportunityStage string

const (
	StageProspecting OpportunityStage = "prospecting"
	StageQualified   OpportunityStage = "qualified"
	StageProposal    OpportunityStage = "proposal"
	StageWon         OpportunityStage = "won"
	StageLost        OpportunityStage = "lost"
)

// OpportunityChart 机会阶段流转图，won/lost 为终态，任一阶段可直接丢单
var OpportunityChart = statemachine.NewChart(StageProspecting).
	Allow(StageProspecting, StageQualified, StageLost).
	Allow(StageQualified, StageProposal, StageLost).
	Allow(StageProposal, StageWon, StageLost)

// Opportunity 销售机会表
type Opportunity struct {
	BaseModel
	OpportunityId string           `gorm:"column:opportunity_id;uniqueIndex" json:"opportunityId"`
	EnterpriseId  string           `gorm:"column:enterprise_id;index" json:"enterpriseId"`
	ContactId     string           `gorm:"column:contact_id;index" json:"contactId"`
	Title         string           `gorm:"column:title" json:"title"`
	Stage         OpportunityStage `gorm:"column:stage;index" json:"stage"`
	Amount        int64            `gorm:"column:amount" json:"amount"` // 以分为单位
	Currency      string           `gorm:"column:currency" json:"currency"`
	CloseDate     *time.Time       `gorm:"column:close_date" json:"closeDate,omitempty"`
	OwnerUserId   string           `gorm:"column:owner_user_id;index" json:"ownerUserId"`
	Notes         string           `gorm:"column:notes" json:"notes"`
}

func (Opportunity) TableName() string {
	return "t_opportunity"
}

// CreateOpportunityReq create opportunity request
type CreateOpportunityReq struct {
	EnterpriseId string `json:"enterpriseId" validate:"required"`
	ContactId    string `json:"contactId"`
	Title        string `json:"title" validate:"required,min=1,max=256"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Notes        string `json:"notes"`
}

// UpdateOpportunityReq update opportunity request
type UpdateOpportunityReq struct {
	Title     *string           `json:"title,omitempty"`
	Stage     *OpportunityStage `json:"stage,omitempty"`
	Amount    *int64            `json:"amount,omitempty"`
	Currency  *string           `json:"currency,omitempty"`
	CloseDate *time.Time        `json:"closeDate,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
}
