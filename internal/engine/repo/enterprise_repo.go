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

type IEnterpriseRepository interface {
	CreateEnterprise(e *model.Enterprise) error
	UpdateEnterprise(enterpriseId string, updates map[string]interface{}) error
	GetEnterpriseById(enterpriseId string) (*model.Enterprise, error)
	ListEnterprises(query *model.EnterpriseQueryReq) ([]*model.Enterprise, int64, error)
	CheckEnterpriseNameExists(name string, excludeEnterpriseId ...string) (bool, error)
	UpdateClaimStatus(enterpriseId string, from, to model.ClaimState) (bool, error)
}

type EnterpriseRepo struct {
	db database.DB
}

func NewEnterpriseRepo(db database.DB) IEnterpriseRepository {
	return &EnterpriseRepo{db: db}
}

// CreateEnterprise 创建企业档案
func (r *EnterpriseRepo) CreateEnterprise(e *model.Enterprise) error {
	return r.db.DB().Create(e).Error
}

// UpdateEnterprise 更新企业档案
func (r *EnterpriseRepo) UpdateEnterprise(enterpriseId string, updates map[string]interface{}) error {
	return r.db.DB().Model(&model.Enterprise{}).
		Where("enterprise_id = ?", enterpriseId).
		Updates(updates).Error
}

// GetEnterpriseById 根据企业ID获取企业信息
func (r *EnterpriseRepo) GetEnterpriseById(enterpriseId string) (*model.Enterprise, error) {
	var e model.Enterprise
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEnterprises 查询企业列表
func (r *EnterpriseRepo) ListEnterprises(query *model.EnterpriseQueryReq) ([]*model.Enterprise, int64, error) {
	var enterprises []*model.Enterprise
	var total int64

	db := r.db.DB().Model(&model.Enterprise{})

	if query.Name != "" {
		db = db.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.ClaimStatus != "" {
		db = db.Where("claim_status = ?", query.ClaimStatus)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Page > 0 && query.PageSize > 0 {
		offset := (query.Page - 1) * query.PageSize
		db = db.Offset(offset).Limit(query.PageSize)
	} else {
		// 默认分页
		db = db.Limit(100)
	}

	err := db.Order("enterprise_id DESC").Find(&enterprises).Error
	return enterprises, total, err
}

// CheckEnterpriseNameExists 检查企业名称是否已存在
func (r *EnterpriseRepo) CheckEnterpriseNameExists(name string, excludeEnterpriseId ...string) (bool, error) {
	var count int64
	db := r.db.DB().Model(&model.Enterprise{}).Where("name = ?", name)
	if len(excludeEnterpriseId) > 0 && excludeEnterpriseId[0] != "" {
		db = db.Where("enterprise_id != ?", excludeEnterpriseId[0])
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// UpdateClaimStatus 条件更新认领状态，返回是否有行被更新。
// 以存储层的单行条件写保证并发安全。
func (r *EnterpriseRepo) UpdateClaimStatus(enterpriseId string, from, to model.ClaimState) (bool, error) {
	res := r.db.DB().Model(&model.Enterprise{}).
		Where("enterprise_id = ? AND claim_status = ?", enterpriseId, from).
		Update("claim_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
