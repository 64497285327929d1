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

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type IClaimRepository interface {
	ExecuteClaim(inv *model.ClaimInvitation, userId, memberId string, now time.Time) error
}

type ClaimRepo struct {
	db database.DB
}

func NewClaimRepo(db database.DB) IClaimRepository {
	return &ClaimRepo{db: db}
}

// ExecuteClaim 在单个事务内完成认领落库。
// 企业状态用条件单行 UPDATE 推进，零行受影响说明已被并发认领抢先，
// 整个事务回滚并返回 errs.ErrAlreadyClaimed。同一事务还会接受邀请、
// 推进联系人状态并为认领人写入 owner 成员记录。
func (r *ClaimRepo) ExecuteClaim(inv *model.ClaimInvitation, userId, memberId string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Enterprise{}).
			Where("enterprise_id = ? AND claim_status = ?", inv.EnterpriseId, model.ClaimUnclaimed).
			Updates(map[string]interface{}{
				"claim_status":  model.ClaimClaimed,
				"owner_user_id": userId,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrAlreadyClaimed
		}

		if err := tx.Model(&model.ClaimInvitation{}).
			Where("invitation_id = ?", inv.InvitationId).
			Update("status", model.InvitationAccepted).Error; err != nil {
			return err
		}

		// 联系人可能已被管理员推进到 signed_up 之后，只前进不回退
		var contact model.Contact
		if err := tx.Where("contact_id = ?", inv.ContactId).First(&contact).Error; err != nil {
			return err
		}
		contactUpdates := map[string]interface{}{
			"claim_status": model.ClaimClaimed,
		}
		if model.InviteChart.Can(contact.InviteStatus, model.InviteSignedUp) {
			contactUpdates["invite_status"] = model.InviteSignedUp
		}
		if err := tx.Model(&model.Contact{}).
			Where("contact_id = ?", inv.ContactId).
			Updates(contactUpdates).Error; err != nil {
			return err
		}

		member := &model.TeamMembership{
			MemberId:     memberId,
			EnterpriseId: inv.EnterpriseId,
			UserId:       userId,
			Role:         model.RoleOwner,
			JoinDate:     now,
		}
		return tx.Create(member).Error
	})
}
