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

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/id"
	"github.com/earthcare/network/pkg/log"
)

type EnterpriseService struct {
	enterpriseRepo repo.IEnterpriseRepository
	membershipRepo repo.IMembershipRepository
}

func NewEnterpriseService(
	enterpriseRepo repo.IEnterpriseRepository,
	membershipRepo repo.IMembershipRepository,
) *EnterpriseService {
	return &EnterpriseService{
		enterpriseRepo: enterpriseRepo,
		membershipRepo: membershipRepo,
	}
}

// CreateEnterprise 创建目录档案，初始为未认领
func (s *EnterpriseService) CreateEnterprise(req *model.CreateEnterpriseReq) (*model.EnterpriseResp, error) {
	// 1. 名称唯一
	exists, err := s.enterpriseRepo.CheckEnterpriseNameExists(req.Name)
	if err != nil {
		log.Errorw("check enterprise name failed", "name", req.Name, "error", err)
		return nil, fmt.Errorf("check enterprise name failed: %w", err)
	}
	if exists {
		return nil, errs.ErrConflict
	}

	// 2. 创建实体
	enterprise := &model.Enterprise{
		EnterpriseId: id.GetULID(),
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Website:      req.Website,
		Location:     req.Location,
		ClaimStatus:  model.ClaimChart.Initial(),
		IsEnabled:    1,
	}
	if err := s.enterpriseRepo.CreateEnterprise(enterprise); err != nil {
		log.Errorw("create enterprise failed", "name", req.Name, "error", err)
		return nil, fmt.Errorf("create enterprise failed: %w", err)
	}

	log.Infow("enterprise created", "enterpriseId", enterprise.EnterpriseId, "name", enterprise.Name)
	return model.ToEnterpriseResp(enterprise), nil
}

// UpdateEnterprise 更新档案内容。已认领企业只有具备编辑权限的成员可以修改。
func (s *EnterpriseService) UpdateEnterprise(enterpriseId, callerUserId string, req *model.UpdateEnterpriseReq) (*model.EnterpriseResp, error) {
	enterprise, err := s.enterpriseRepo.GetEnterpriseById(enterpriseId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}

	// 已认领档案的编辑受团队角色约束
	if enterprise.ClaimStatus != model.ClaimUnclaimed {
		member, err := s.membershipRepo.GetMemberByUser(enterpriseId, callerUserId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.ErrForbidden
			}
			return nil, fmt.Errorf("load membership failed: %w", err)
		}
		if !member.Role.Capability().CanEditProfile {
			return nil, errs.ErrForbidden
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		exists, err := s.enterpriseRepo.CheckEnterpriseNameExists(*req.Name, enterpriseId)
		if err != nil {
			return nil, fmt.Errorf("check enterprise name failed: %w", err)
		}
		if exists {
			return nil, errs.ErrConflict
		}
		updates["name"] = *req.Name
		enterprise.Name = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
		enterprise.Category = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		enterprise.Description = *req.Description
	}
	if req.Website != nil {
		updates["website"] = *req.Website
		enterprise.Website = *req.Website
	}
	if req.Location != nil {
		updates["location"] = *req.Location
		enterprise.Location = *req.Location
	}

	if len(updates) > 0 {
		if err := s.enterpriseRepo.UpdateEnterprise(enterpriseId, updates); err != nil {
			log.Errorw("update enterprise failed", "enterpriseId", enterpriseId, "error", err)
			return nil, fmt.Errorf("update enterprise failed: %w", err)
		}
	}

	return model.ToEnterpriseResp(enterprise), nil
}

// GetEnterprise 获取单个企业档案
func (s *EnterpriseService) GetEnterprise(enterpriseId string) (*model.EnterpriseResp, error) {
	enterprise, err := s.enterpriseRepo.GetEnterpriseById(enterpriseId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}
	return model.ToEnterpriseResp(enterprise), nil
}

// ListEnterprises 目录查询
func (s *EnterpriseService) ListEnterprises(query *model.EnterpriseQueryReq) ([]*model.EnterpriseResp, int64, error) {
	enterprises, total, err := s.enterpriseRepo.ListEnterprises(query)
	if err != nil {
		return nil, 0, fmt.Errorf("list enterprises failed: %w", err)
	}
	resps := make([]*model.EnterpriseResp, 0, len(enterprises))
	for _, e := range enterprises {
		resps = append(resps, model.ToEnterpriseResp(e))
	}
	return resps, total, nil
}
