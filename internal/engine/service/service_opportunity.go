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

package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/id"
	"github.com/earthcare/network/pkg/log"
)

type OpportunityService struct {
	opportunityRepo repo.IOpportunityRepository
	enterpriseRepo  repo.IEnterpriseRepository
	now             func() time.Time
}

func NewOpportunityService(
	opportunityRepo repo.IOpportunityRepository,
	enterpriseRepo repo.IEnterpriseRepository,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		enterpriseRepo:  enterpriseRepo,
		now:             time.Now,
	}
}

// CreateOpportunity 创建销售机会，初始阶段 prospecting
func (s *OpportunityService) CreateOpportunity(req *model.CreateOpportunityReq, ownerUserId string) (*model.Opportunity, error) {
	if _, err := s.enterpriseRepo.GetEnterpriseById(req.EnterpriseId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	opp := &model.Opportunity{
		OpportunityId: id.GetULID(),
		EnterpriseId:  req.EnterpriseId,
		ContactId:     req.ContactId,
		Title:         req.Title,
		Stage:         model.OpportunityChart.Initial(),
		Amount:        req.Amount,
		Currency:      currency,
		OwnerUserId:   ownerUserId,
		Notes:         req.Notes,
	}
	if err := s.opportunityRepo.CreateOpportunity(opp); err != nil {
		log.Errorw("create opportunity failed", "enterpriseId", req.EnterpriseId, "error", err)
		return nil, fmt.Errorf("create opportunity failed: %w", err)
	}

	log.Infow("opportunity created", "opportunityId", opp.OpportunityId, "enterpriseId", opp.EnterpriseId)
	return opp, nil
}

// UpdateOpportunity 更新销售机会。阶段变更必须是阶段图允许的流转，
// 进入终态时记录关单时间。
func (s *OpportunityService) UpdateOpportunity(opportunityId string, req *model.UpdateOpportunityReq) (*model.Opportunity, error) {
	opp, err := s.opportunityRepo.GetOpportunityById(opportunityId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load opportunity failed: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Stage != nil && *req.Stage != opp.Stage {
		if err := model.OpportunityChart.Step(opp.Stage, *req.Stage); err != nil {
			return nil, err
		}
		updates["stage"] = *req.Stage
		opp.Stage = *req.Stage
		if model.OpportunityChart.IsTerminal(*req.Stage) && req.CloseDate == nil {
			now := s.now()
			updates["close_date"] = now
			opp.CloseDate = &now
		}
	}
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
		opp.Title = *req.Title
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
		opp.Amount = *req.Amount
	}
	if req.Currency != nil && *req.Currency != "" {
		updates["currency"] = *req.Currency
		opp.Currency = *req.Currency
	}
	if req.CloseDate != nil {
		updates["close_date"] = *req.CloseDate
		opp.CloseDate = req.CloseDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
		opp.Notes = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.opportunityRepo.UpdateOpportunity(opportunityId, updates); err != nil {
			log.Errorw("update opportunity failed", "opportunityId", opportunityId, "error", err)
			return nil, fmt.Errorf("update opportunity failed: %w", err)
		}
	}

	return opp, nil
}

// GetOpportunity 获取销售机会
func (s *OpportunityService) GetOpportunity(opportunityId string) (*model.Opportunity, error) {
	opp, err := s.opportunityRepo.GetOpportunityById(opportunityId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load opportunity failed: %w", err)
	}
	return opp, nil
}

// ListOpportunities 列出企业的销售机会
func (s *OpportunityService) ListOpportunities(enterpriseId string) ([]model.Opportunity, error) {
	opps, err := s.opportunityRepo.ListOpportunitiesByEnterprise(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list opportunities failed: %w", err)
	}
	return opps, nil
}
