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

import "time"

// SubscriptionTier 订阅层级，能力查表
type SubscriptionTier string

const (
	TierFree         SubscriptionTier = "free"
	TierStarter      SubscriptionTier = "starter"
	TierProfessional SubscriptionTier = "professional"
)

// TierCapability 订阅层级能力表
type TierCapability struct {
	MaxMembers       int // 0 表示不限
	CanSendInvites   bool
	CanUseLeadScore  bool
	CanExportReports bool
}

var tierCapabilities = map[SubscriptionTier]TierCapability{
	TierFree:         {MaxMembers: 3},
	TierStarter:      {MaxMembers: 10, CanSendInvites: true},
	TierProfessional: {MaxMembers: 0, CanSendInvites: true, CanUseLeadScore: true, CanExportReports: true},
}

// Capability returns the capability row for the tier. Unknown tiers behave
// like free.
func (t SubscriptionTier) Capability() TierCapability {
	if cap, ok := tierCapabilities[t]; ok {
		return cap
	}
	return tierCapabilities[TierFree]
}

// Subscription 企业订阅表。到期后按 free 处理。
type Subscription struct {
	BaseModel
	SubscriptionId string           `gorm:"column:subscription_id;uniqueIndex" json:"subscriptionId"`
	EnterpriseId   string           `gorm:"column:enterprise_id;uniqueIndex" json:"enterpriseId"`
	Tier           SubscriptionTier `gorm:"column:tier" json:"tier"`
	ValidUntil     *time.Time       `gorm:"column:valid_until" json:"validUntil,omitempty"` // 为空表示长期有效
}

func (Subscription) TableName() string {
	return "t_subscription"
}

// EffectiveTier returns the tier taking expiry into account.
func (s *Subscription) EffectiveTier(now time.Time) SubscriptionTier {
	if s == nil {
		return TierFree
	}
	if s.ValidUntil != nil && now.After(*s.ValidUntil) {
		return TierFree
	}
	return s.Tier
}
