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
	"time"

	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type IInvitationRepository interface {
	CreateInvitation(inv *model.ClaimInvitation) error
	GetInvitationByToken(token string) (*model.ClaimInvitation, error)
	GetInvitationById(invitationId string) (*model.ClaimInvitation, error)
	GetPendingInvitation(enterpriseId, contactId string) (*model.ClaimInvitation, error)
	ListInvitationsByEnterprise(enterpriseId string) ([]model.ClaimInvitation, error)
	UpdateInvitationStatus(invitationId string, status model.InvitationState) error
	MarkExpiredBefore(deadline time.Time) (int64, error)
}

type InvitationRepo struct {
	db database.DB
}

func NewInvitationRepo(db database.DB) IInvitationRepository {
	return &InvitationRepo{db: db}
}

// CreateInvitation 创建认领邀请
func (r *InvitationRepo) CreateInvitation(inv *model.ClaimInvitation) error {
	return r.db.DB().Create(inv).Error
}

// GetInvitationByToken 根据令牌查询邀请。令牌列有唯一索引。
func (r *InvitationRepo) GetInvitationByToken(token string) (*model.ClaimInvitation, error) {
	var inv model.ClaimInvitation
	err := r.db.DB().Where("token = ?", token).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvitationById 根据邀请ID查询邀请
func (r *InvitationRepo) GetInvitationById(invitationId string) (*model.ClaimInvitation, error) {
	var inv model.ClaimInvitation
	err := r.db.DB().Where("invitation_id = ?", invitationId).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetPendingInvitation 查询企业和联系人之间的待处理邀请
func (r *InvitationRepo) GetPendingInvitation(enterpriseId, contactId string) (*model.ClaimInvitation, error) {
	var inv model.ClaimInvitation
	err := r.db.DB().
		Where("enterprise_id = ? AND contact_id = ? AND status = ?",
			enterpriseId, contactId, model.InvitationPending).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvitationsByEnterprise 列出企业的所有邀请
func (r *InvitationRepo) ListInvitationsByEnterprise(enterpriseId string) ([]model.ClaimInvitation, error) {
	var invs []model.ClaimInvitation
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).
		Order("invited_at DESC").Find(&invs).Error
	return invs, err
}

// UpdateInvitationStatus 更新邀请状态
func (r *InvitationRepo) UpdateInvitationStatus(invitationId string, status model.InvitationState) error {
	return r.db.DB().Model(&model.ClaimInvitation{}).
		Where("invitation_id = ?", invitationId).
		Update("status", status).Error
}

// MarkExpiredBefore 将截止时间早于 deadline 的待处理邀请批量置为过期，
// 返回受影响的行数。供定时任务调用。
func (r *InvitationRepo) MarkExpiredBefore(deadline time.Time) (int64, error) {
	res := r.db.DB().Model(&model.ClaimInvitation{}).
		Where("status = ? AND expires_at < ?", model.InvitationPending, deadline).
		Update("status", model.InvitationExpired)
	return res.RowsAffected, res.Error
}
