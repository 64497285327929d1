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

type ContactService struct {
	contactRepo    repo.IContactRepository
	enterpriseRepo repo.IEnterpriseRepository
}

func NewContactService(
	contactRepo repo.IContactRepository,
	enterpriseRepo repo.IEnterpriseRepository,
) *ContactService {
	return &ContactService{
		contactRepo:    contactRepo,
		enterpriseRepo: enterpriseRepo,
	}
}

// CreateContact 创建联系人，初始状态 not_invited / unclaimed
func (s *ContactService) CreateContact(req *model.CreateContactReq) (*model.ContactResp, error) {
	// 1. 企业必须存在
	if _, err := s.enterpriseRepo.GetEnterpriseById(req.EnterpriseId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}

	// 2. 创建实体
	contact := &model.Contact{
		ContactId:    id.GetULID(),
		EnterpriseId: req.EnterpriseId,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Title:        req.Title,
		InviteStatus: model.InviteChart.Initial(),
		ClaimStatus:  model.ClaimChart.Initial(),
	}
	if err := s.contactRepo.CreateContact(contact); err != nil {
		log.Errorw("create contact failed", "enterpriseId", req.EnterpriseId, "error", err)
		return nil, fmt.Errorf("create contact failed: %w", err)
	}

	log.Infow("contact created", "contactId", contact.ContactId, "enterpriseId", contact.EnterpriseId)
	return model.ToContactResp(contact), nil
}

// UpdateContact 更新联系人基础信息。状态流转走 InvitationService。
func (s *ContactService) UpdateContact(contactId string, req *model.UpdateContactReq) (*model.ContactResp, error) {
	contact, err := s.contactRepo.GetContactById(contactId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load contact failed: %w", err)
	}

	updates := make(map[string]interface{})
	if req.FullName != nil && *req.FullName != "" {
		updates["full_name"] = *req.FullName
		contact.FullName = *req.FullName
	}
	if req.Email != nil && *req.Email != "" {
		updates["email"] = *req.Email
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
		contact.Phone = *req.Phone
	}
	if req.Title != nil {
		updates["title"] = *req.Title
		contact.Title = *req.Title
	}

	if len(updates) > 0 {
		if err := s.contactRepo.UpdateContact(contactId, updates); err != nil {
			log.Errorw("update contact failed", "contactId", contactId, "error", err)
			return nil, fmt.Errorf("update contact failed: %w", err)
		}
	}

	return model.ToContactResp(contact), nil
}

// GetContact 获取联系人
func (s *ContactService) GetContact(contactId string) (*model.ContactResp, error) {
	contact, err := s.contactRepo.GetContactById(contactId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load contact failed: %w", err)
	}
	return model.ToContactResp(contact), nil
}

// ListContacts 列出企业联系人
func (s *ContactService) ListContacts(enterpriseId string) ([]*model.ContactResp, error) {
	contacts, err := s.contactRepo.ListContactsByEnterprise(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list contacts failed: %w", err)
	}
	resps := make([]*model.ContactResp, 0, len(contacts))
	for i := range contacts {
		resps = append(resps, model.ToContactResp(&contacts[i]))
	}
	return resps, nil
}
