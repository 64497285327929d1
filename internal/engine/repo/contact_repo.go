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

type IContactRepository interface {
	CreateContact(c *model.Contact) error
	UpdateContact(contactId string, updates map[string]interface{}) error
	GetContactById(contactId string) (*model.Contact, error)
	ListContactsByEnterprise(enterpriseId string) ([]model.Contact, error)
	UpdateInviteStatus(contactId string, status model.InviteState) error
	UpdateLeadScore(contactId string, score int) error
}

type ContactRepo struct {
	db database.DB
}

func NewContactRepo(db database.DB) IContactRepository {
	return &ContactRepo{db: db}
}

// CreateContact 创建联系人
func (r *ContactRepo) CreateContact(c *model.Contact) error {
	return r.db.DB().Create(c).Error
}

// UpdateContact 更新联系人
func (r *ContactRepo) UpdateContact(contactId string, updates map[string]interface{}) error {
	return r.db.DB().Model(&model.Contact{}).
		Where("contact_id = ?", contactId).
		Updates(updates).Error
}

// GetContactById 根据联系人ID获取联系人
func (r *ContactRepo) GetContactById(contactId string) (*model.Contact, error) {
	var c model.Contact
	err := r.db.DB().Where("contact_id = ?", contactId).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContactsByEnterprise 列出企业下的联系人
func (r *ContactRepo) ListContactsByEnterprise(enterpriseId string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).
		Order("contact_id DESC").Find(&contacts).Error
	return contacts, err
}

// UpdateInviteStatus 更新联系人邀请状态
func (r *ContactRepo) UpdateInviteStatus(contactId string, status model.InviteState) error {
	return r.db.DB().Model(&model.Contact{}).
		Where("contact_id = ?", contactId).
		Update("invite_status", status).Error
}

// UpdateLeadScore 更新联系人评分
func (r *ContactRepo) UpdateLeadScore(contactId string, score int) error {
	return r.db.DB().Model(&model.Contact{}).
		Where("contact_id = ?", contactId).
		Update("lead_score", score).Error
}
