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

type IOpportunityRepository interface {
	CreateOpportunity(o *model.Opportunity) error
	UpdateOpportunity(opportunityId string, updates map[string]interface{}) error
	GetOpportunityById(opportunityId string) (*model.Opportunity, error)
	ListOpportunitiesByEnterprise(enterpriseId string) ([]model.Opportunity, error)
}

type OpportunityRepo struct {
	db database.DB
}

func NewOpportunityRepo(db database.DB) IOpportunityRepository {
	return &OpportunityRepo{db: db}
}

// CreateOpportunity 创建销售机会
func (r *OpportunityRepo) CreateOpportunity(o *model.Opportunity) error {
	return r.db.DB().Create(o).Error
}

// UpdateOpportunity 更新销售机会
func (r *OpportunityRepo) UpdateOpportunity(opportunityId string, updates map[string]interface{}) error {
	return r.db.DB().Model(&model.Opportunity{}).
		Where("opportunity_id = ?", opportunityId).
		Updates(updates).Error
}

// GetOpportunityById 根据机会ID获取销售机会
func (r *OpportunityRepo) GetOpportunityById(opportunityId string) (*model.Opportunity, error) {
	var o model.Opportunity
	err := r.db.DB().Where("opportunity_id = ?", opportunityId).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOpportunitiesByEnterprise 列出企业下的销售机会
func (r *OpportunityRepo) ListOpportunitiesByEnterprise(enterpriseId string) ([]model.Opportunity, error) {
	var opps []model.Opportunity
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).
		Order("opportunity_id DESC").Find(&opps).Error
	return opps, err
}
