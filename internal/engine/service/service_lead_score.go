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
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/log"
)

// defaultScoreRule 外部评分服务不可用时的本地兜底规则。
// 状态越靠近 active、资料越完整，分数越高。
const defaultScoreRule = `
	(invitationStatus == "active" ? 40 :
	 invitationStatus == "signed_up" ? 30 :
	 invitationStatus == "invited" ? 15 : 0) +
	(claimStatus == "verified" ? 30 :
	 claimStatus == "claimed" ? 20 : 0) +
	(hasPhone ? 10 : 0) +
	(hasTitle ? 10 : 0) +
	(opportunities > 0 ? 10 : 0)
`

// LeadScoreConf 评分服务配置
type LeadScoreConf struct {
	Endpoint string        `mapstructure:"endpoint"` // 为空时只用本地规则
	APIKey   string        `mapstructure:"apiKey"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Rule     string        `mapstructure:"rule"` // 覆盖默认兜底规则
}

type scoreRequest struct {
	ContactId        string `json:"contactId"`
	FullName         string `json:"fullName"`
	Title            string `json:"title"`
	InvitationStatus string `json:"invitationStatus"`
	ClaimStatus      string `json:"claimStatus"`
	HasPhone         bool   `json:"hasPhone"`
	Opportunities    int    `json:"opportunities"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

type LeadScoreService struct {
	contactRepo      repo.IContactRepository
	opportunityRepo  repo.IOpportunityRepository
	subscriptionRepo repo.ISubscriptionRepository
	client           *resty.Client
	endpoint         string
	program          *vm.Program
	now              func() time.Time
}

func NewLeadScoreService(
	contactRepo repo.IContactRepository,
	opportunityRepo repo.IOpportunityRepository,
	subscriptionRepo repo.ISubscriptionRepository,
	cfg LeadScoreConf,
) (*LeadScoreService, error) {
	rule := cfg.Rule
	if rule == "" {
		rule = defaultScoreRule
	}
	program, err := expr.Compile(rule, expr.AsInt())
	if err != nil {
		return nil, fmt.Errorf("compile score rule failed: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	return &LeadScoreService{
		contactRepo:      contactRepo,
		opportunityRepo:  opportunityRepo,
		subscriptionRepo: subscriptionRepo,
		client:           client,
		endpoint:         cfg.Endpoint,
		program:          program,
		now:              time.Now,
	}, nil
}

// ScoreContact 为联系人计算并持久化评分，0-100。
// 优先调用外部评分服务，失败时退回本地规则，评分功能受订阅层级约束。
func (s *LeadScoreService) ScoreContact(ctx context.Context, contactId string) (*model.ContactResp, error) {
	contact, err := s.contactRepo.GetContactById(contactId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load contact failed: %w", err)
	}

	sub, err := s.subscriptionRepo.GetSubscriptionByEnterprise(contact.EnterpriseId)
	if err != nil {
		return nil, fmt.Errorf("load subscription failed: %w", err)
	}
	if !sub.EffectiveTier(s.now()).Capability().CanUseLeadScore {
		return nil, errs.ErrPlanLimit
	}

	opps, err := s.opportunityRepo.ListOpportunitiesByEnterprise(contact.EnterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list opportunities failed: %w", err)
	}

	score, err := s.remoteScore(ctx, contact, len(opps))
	if err != nil {
		log.Warnw("remote lead scoring unavailable, using local rule", "contactId", contactId, "error", err)
		score, err = s.localScore(contact, len(opps))
		if err != nil {
			return nil, err
		}
	}
	score = clampScore(score)

	if err := s.contactRepo.UpdateLeadScore(contactId, score); err != nil {
		log.Errorw("persist lead score failed", "contactId", contactId, "error", err)
		return nil, fmt.Errorf("persist lead score failed: %w", err)
	}

	log.Infow("contact scored", "contactId", contactId, "score", score)
	contact.LeadScore = score
	return model.ToContactResp(contact), nil
}

func (s *LeadScoreService) remoteScore(ctx context.Context, contact *model.Contact, opportunities int) (int, error) {
	if s.endpoint == "" {
		return 0, errors.New("no scoring endpoint configured")
	}

	var result scoreResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&scoreRequest{
			ContactId:        contact.ContactId,
			FullName:         contact.FullName,
			Title:            contact.Title,
			InvitationStatus: string(contact.InviteStatus),
			ClaimStatus:      string(contact.ClaimStatus),
			HasPhone:         contact.Phone != "",
			Opportunities:    opportunities,
		}).
		SetResult(&result).
		Post(s.endpoint)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("scoring service returned %s", resp.Status())
	}
	return result.Score, nil
}

func (s *LeadScoreService) localScore(contact *model.Contact, opportunities int) (int, error) {
	env := map[string]interface{}{
		"invitationStatus": string(contact.InviteStatus),
		"claimStatus":      string(contact.ClaimStatus),
		"hasPhone":         contact.Phone != "",
		"hasTitle":         contact.Title != "",
		"opportunities":    opportunities,
	}
	out, err := expr.Run(s.program, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate score rule failed: %w", err)
	}
	score, ok := out.(int)
	if !ok {
		return 0, fmt.Errorf("score rule returned %T, want int", out)
	}
	return score, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
