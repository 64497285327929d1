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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/cache"
	"github.com/earthcare/network/pkg/id"
	"github.com/earthcare/network/pkg/log"
	"github.com/earthcare/network/pkg/metrics"
)

// claimPreviewTTL 预览缓存保留时间，认领成功后主动失效
const claimPreviewTTL = 5 * time.Minute

type ClaimService struct {
	claimRepo      repo.IClaimRepository
	invitationRepo repo.IInvitationRepository
	enterpriseRepo repo.IEnterpriseRepository
	contactRepo    repo.IContactRepository
	redis          cache.ICache
	now            func() time.Time
}

func NewClaimService(
	claimRepo repo.IClaimRepository,
	invitationRepo repo.IInvitationRepository,
	enterpriseRepo repo.IEnterpriseRepository,
	contactRepo repo.IContactRepository,
	redis cache.ICache,
) *ClaimService {
	return &ClaimService{
		claimRepo:      claimRepo,
		invitationRepo: invitationRepo,
		enterpriseRepo: enterpriseRepo,
		contactRepo:    contactRepo,
		redis:          redis,
		now:            time.Now,
	}
}

// ResolveClaim 按令牌解析认领预览。
// 过期判定以时钟为准而不是存储的状态，已知但过期的令牌必须返回
// errs.ErrExpired 而不是 errs.ErrNotFound。
func (s *ClaimService) ResolveClaim(ctx context.Context, token string) (*model.ClaimPreviewResp, error) {
	// 1. 预览缓存命中仍需按时钟校验，过期或状态推进后的缓存作废
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, consts.ClaimPreviewKey+token).Result(); err == nil && raw != "" {
			var cached model.ClaimPreviewResp
			if err := json.Unmarshal([]byte(raw), &cached); err == nil &&
				cached.Invitation != nil &&
				cached.Invitation.Status == model.InvitationPending &&
				s.now().Before(cached.Invitation.ExpiresAt) {
				return &cached, nil
			}
			// 走数据库路径重新判定，由其返回对应的错误
			s.redis.Del(ctx, consts.ClaimPreviewKey+token)
		}
	}

	// 2. 查询邀请
	inv, err := s.invitationRepo.GetInvitationByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		log.Errorw("resolve claim token failed", "error", err)
		return nil, fmt.Errorf("resolve claim token failed: %w", err)
	}

	// 3. 状态校验，过期优先于其他错误
	now := s.now()
	if inv.Status == model.InvitationExpired || inv.IsExpired(now) {
		return nil, errs.ErrExpired
	}
	if inv.Status == model.InvitationAccepted {
		return nil, errs.ErrAlreadyClaimed
	}

	// 4. 组装预览
	enterprise, err := s.enterpriseRepo.GetEnterpriseById(inv.EnterpriseId)
	if err != nil {
		log.Errorw("load enterprise for claim preview failed", "enterpriseId", inv.EnterpriseId, "error", err)
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}
	if enterprise.ClaimStatus != model.ClaimUnclaimed {
		return nil, errs.ErrAlreadyClaimed
	}

	contact, err := s.contactRepo.GetContactById(inv.ContactId)
	if err != nil {
		log.Errorw("load contact for claim preview failed", "contactId", inv.ContactId, "error", err)
		return nil, fmt.Errorf("load contact failed: %w", err)
	}

	preview := &model.ClaimPreviewResp{
		Enterprise: model.ToEnterpriseResp(enterprise),
		Contact:    model.ToContactResp(contact),
		Invitation: model.ToInvitationResp(inv),
	}

	// 5. 写入预览缓存，失败不影响主流程
	if s.redis != nil {
		if raw, err := json.Marshal(preview); err == nil {
			s.redis.Set(ctx, consts.ClaimPreviewKey+token, string(raw), claimPreviewTTL)
		}
	}

	return preview, nil
}

// ExecuteClaim 执行认领。认领人成为企业 owner，邀请被接受，联系人状态推进。
// 并发认领由存储层的条件写保证只有一个赢家。
func (s *ClaimService) ExecuteClaim(ctx context.Context, token, userId string) (*model.EnterpriseResp, error) {
	// 1. 校验令牌
	inv, err := s.invitationRepo.GetInvitationByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ClaimAttemptsTotal.WithLabelValues("not_found").Inc()
			return nil, errs.ErrNotFound
		}
		log.Errorw("load invitation for claim failed", "error", err)
		return nil, fmt.Errorf("load invitation failed: %w", err)
	}

	now := s.now()
	if inv.Status == model.InvitationExpired || inv.IsExpired(now) {
		metrics.ClaimAttemptsTotal.WithLabelValues("expired").Inc()
		return nil, errs.ErrExpired
	}
	if inv.Status == model.InvitationAccepted {
		metrics.ClaimAttemptsTotal.WithLabelValues("already_claimed").Inc()
		return nil, errs.ErrAlreadyClaimed
	}

	// 2. 事务内落库，输家在此收到 ErrAlreadyClaimed
	if err := s.claimRepo.ExecuteClaim(inv, userId, id.GetUUID(), now); err != nil {
		if errors.Is(err, errs.ErrAlreadyClaimed) {
			metrics.ClaimAttemptsTotal.WithLabelValues("already_claimed").Inc()
			return nil, errs.ErrAlreadyClaimed
		}
		metrics.ClaimAttemptsTotal.WithLabelValues("error").Inc()
		log.Errorw("execute claim failed", "enterpriseId", inv.EnterpriseId, "userId", userId, "error", err)
		return nil, fmt.Errorf("execute claim failed: %w", err)
	}

	metrics.ClaimAttemptsTotal.WithLabelValues("success").Inc()
	log.Infow("enterprise claimed", "enterpriseId", inv.EnterpriseId, "userId", userId)

	// 3. 失效预览缓存。同一企业其他邀请的预览也已失真，一并删除
	if s.redis != nil {
		keys := []string{consts.ClaimPreviewKey + token}
		if siblings, err := s.invitationRepo.ListInvitationsByEnterprise(inv.EnterpriseId); err == nil {
			for _, sib := range siblings {
				if sib.Token != token {
					keys = append(keys, consts.ClaimPreviewKey+sib.Token)
				}
			}
		}
		s.redis.Del(ctx, keys...)
	}

	// 4. 返回最新的企业档案
	enterprise, err := s.enterpriseRepo.GetEnterpriseById(inv.EnterpriseId)
	if err != nil {
		log.Errorw("load enterprise after claim failed", "enterpriseId", inv.EnterpriseId, "error", err)
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}
	return model.ToEnterpriseResp(enterprise), nil
}
