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
	"fmt"
	"time"

	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/log"
	"github.com/earthcare/network/pkg/metrics"
)

// SweeperService 定期把超过截止时间的待处理邀请置为过期。
// 解析路径同时按时钟校验，清扫只是让存储的状态追上时钟。
type SweeperService struct {
	invitationRepo repo.IInvitationRepository
	now            func() time.Time
}

func NewSweeperService(invitationRepo repo.IInvitationRepository) *SweeperService {
	return &SweeperService{
		invitationRepo: invitationRepo,
		now:            time.Now,
	}
}

// SweepExpiredInvitations 批量过期处理，供定时任务调用
func (s *SweeperService) SweepExpiredInvitations() error {
	affected, err := s.invitationRepo.MarkExpiredBefore(s.now())
	if err != nil {
		log.Errorw("sweep expired invitations failed", "error", err)
		return fmt.Errorf("sweep expired invitations failed: %w", err)
	}
	if affected > 0 {
		metrics.InvitationsExpiredTotal.Add(float64(affected))
		log.Infow("invitations expired", "count", affected)
	}
	return nil
}
