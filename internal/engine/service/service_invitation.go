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

// defaultInvitationTTL 默认邀请有效期
const defaultInvitationTTL = 14 * 24 * time.Hour

type InvitationService struct {
	invitationRepo   repo.IInvitationRepository
	enterpriseRepo   repo.IEnterpriseRepository
	contactRepo      repo.IContactRepository
	subscriptionRepo repo.ISubscriptionRepository
	now              func() time.Time
}

func NewInvitationService(
	invitationRepo repo.IInvitationRepository,
	enterpriseRepo repo.IEnterpriseRepository,
	contactRepo repo.IContactRepository,
	subscriptionRepo repo.ISubscriptionRepository,
) *InvitationService {
	return &InvitationService{
		invitationRepo:   invitationRepo,
		enterpriseRepo:   enterpriseRepo,
		contactRepo:      contactRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

// CreateInvitation 为联系人签发认领邀请。
// 联系人状态推进 not_invited → invited，一个联系人同时只允许一条待处理邀请。
// Token 只在创建响应中回传一次。
func (s *InvitationService) CreateInvitation(req *model.CreateInvitationReq, invitedBy string) (*model.InvitationResp, error) {
	// 1. 企业必须存在且未被认领
	enterprise, err := s.enterpriseRepo.GetEnterpriseById(req.EnterpriseId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}
	if enterprise.ClaimStatus != model.ClaimUnclaimed {
		return nil, errs.ErrAlreadyClaimed
	}

	// 2. 联系人必须存在且归属该企业
	contact, err := s.contactRepo.GetContactById(req.PersonId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load contact failed: %w", err)
	}
	if contact.EnterpriseId != req.EnterpriseId {
		return nil, errs.ErrNotFound
	}

	// 3. 订阅层级必须允许发送邀请
	sub, err := s.subscriptionRepo.GetSubscriptionByEnterprise(req.EnterpriseId)
	if err != nil {
		return nil, fmt.Errorf("load subscription failed: %w", err)
	}
	if !sub.EffectiveTier(s.now()).Capability().CanSendInvites {
		return nil, errs.ErrPlanLimit
	}

	// 4. 不允许重复的待处理邀请
	if _, err := s.invitationRepo.GetPendingInvitation(req.EnterpriseId, req.PersonId); err == nil {
		return nil, errs.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check pending invitation failed: %w", err)
	}

	// 5. 联系人邀请状态必须能流转到 invited
	if contact.InviteStatus != model.InviteInvited {
		if err := model.InviteChart.Step(contact.InviteStatus, model.InviteInvited); err != nil {
			return nil, err
		}
	}

	// 6. 创建邀请
	ttl := defaultInvitationTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}
	now := s.now()
	inv := &model.ClaimInvitation{
		InvitationId: id.GetULID(),
		EnterpriseId: req.EnterpriseId,
		ContactId:    req.PersonId,
		Token:        id.ClaimToken(),
		InvitedEmail: contact.Email,
		InvitedBy:    invitedBy,
		Status:       model.InvitationPending,
		InvitedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	if err := s.invitationRepo.CreateInvitation(inv); err != nil {
		log.Errorw("create invitation failed", "enterpriseId", req.EnterpriseId, "contactId", req.PersonId, "error", err)
		return nil, fmt.Errorf("create invitation failed: %w", err)
	}

	// 7. 推进联系人状态
	if contact.InviteStatus != model.InviteInvited {
		if err := s.contactRepo.UpdateInviteStatus(contact.ContactId, model.InviteInvited); err != nil {
			log.Errorw("update contact invite status failed", "contactId", contact.ContactId, "error", err)
			return nil, fmt.Errorf("update contact invite status failed: %w", err)
		}
	}

	log.Infow("claim invitation created", "invitationId", inv.InvitationId,
		"enterpriseId", inv.EnterpriseId, "contactId", inv.ContactId)

	resp := model.ToInvitationResp(inv)
	resp.Token = inv.Token
	return resp, nil
}

// UpdateContactStatus 管理员手动推进联系人的邀请状态或企业的认领状态。
// 每一步都必须是状态图允许的流转，verified 只能从这里进入。
func (s *InvitationService) UpdateContactStatus(contactId string, req *model.UpdateInvitationReq) (*model.ContactResp, error) {
	contact, err := s.contactRepo.GetContactById(contactId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load contact failed: %w", err)
	}

	if req.InvitationStatus != nil {
		if err := model.InviteChart.Step(contact.InviteStatus, *req.InvitationStatus); err != nil {
			return nil, err
		}
		if err := s.contactRepo.UpdateInviteStatus(contactId, *req.InvitationStatus); err != nil {
			log.Errorw("update invite status failed", "contactId", contactId, "error", err)
			return nil, fmt.Errorf("update invite status failed: %w", err)
		}
		contact.InviteStatus = *req.InvitationStatus
	}

	if req.ClaimStatus != nil {
		if err := model.ClaimChart.Step(contact.ClaimStatus, *req.ClaimStatus); err != nil {
			return nil, err
		}
		// 企业状态与联系人状态一并推进
		changed, err := s.enterpriseRepo.UpdateClaimStatus(contact.EnterpriseId, contact.ClaimStatus, *req.ClaimStatus)
		if err != nil {
			log.Errorw("update enterprise claim status failed", "enterpriseId", contact.EnterpriseId, "error", err)
			return nil, fmt.Errorf("update enterprise claim status failed: %w", err)
		}
		if !changed {
			return nil, fmt.Errorf("%w: %s → %s", errs.ErrInvalidTransition, contact.ClaimStatus, *req.ClaimStatus)
		}
		if err := s.contactRepo.UpdateContact(contactId, map[string]interface{}{
			"claim_status": *req.ClaimStatus,
		}); err != nil {
			log.Errorw("update contact claim status failed", "contactId", contactId, "error", err)
			return nil, fmt.Errorf("update contact claim status failed: %w", err)
		}
		contact.ClaimStatus = *req.ClaimStatus
	}

	log.Infow("contact status updated", "contactId", contactId,
		"invitationStatus", contact.InviteStatus, "claimStatus", contact.ClaimStatus)

	return model.ToContactResp(contact), nil
}

// ListInvitations 列出企业的邀请记录
func (s *InvitationService) ListInvitations(enterpriseId string) ([]*model.InvitationResp, error) {
	invs, err := s.invitationRepo.ListInvitationsByEnterprise(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list invitations failed: %w", err)
	}
	resps := make([]*model.InvitationResp, 0, len(invs))
	for i := range invs {
		resps = append(resps, model.ToInvitationResp(&invs[i]))
	}
	return resps, nil
}
