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
	"errors"

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type ISubscriptionRepository interface {
	UpsertSubscription(s *model.Subscription) error
	GetSubscriptionByEnterprise(enterpriseId string) (*model.Subscription, error)
}

type SubscriptionRepo struct {
	db database.DB
}

func NewSubscriptionRepo(db database.DB) ISubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

// UpsertSubscription 写入或更新企业订阅
func (r *SubscriptionRepo) UpsertSubscription(s *model.Subscription) error {
	var existing model.Subscription
	err := r.db.DB().Where("enterprise_id = ?", s.EnterpriseId).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.DB().Create(s).Error
	}
	if err != nil {
		return err
	}
	return r.db.DB().Model(&model.Subscription{}).
		Where("enterprise_id = ?", s.EnterpriseId).
		Updates(map[string]interface{}{
			"tier":        s.Tier,
			"valid_until": s.ValidUntil,
		}).Error
}

// GetSubscriptionByEnterprise 获取企业订阅。未配置订阅时返回 nil，按 free 处理。
func (r *SubscriptionRepo) GetSubscriptionByEnterprise(enterpriseId string) (*model.Subscription, error) {
	var s model.Subscription
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
