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

type TeamService struct {
	membershipRepo   repo.IMembershipRepository
	subscriptionRepo repo.ISubscriptionRepository
	now              func() time.Time
}

func NewTeamService(
	membershipRepo repo.IMembershipRepository,
	subscriptionRepo repo.ISubscriptionRepository,
) *TeamService {
	return &TeamService{
		membershipRepo:   membershipRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

// callerMembership 校验调用者是该企业成员并返回其成员记录
func (s *TeamService) callerMembership(enterpriseId, callerUserId string) (*model.TeamMembership, error) {
	caller, err := s.membershipRepo.GetMemberByUser(enterpriseId, callerUserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrForbidden
		}
		return nil, fmt.Errorf("load caller membership failed: %w", err)
	}
	return caller, nil
}

// AddMember 添加团队成员。调用者必须具备成员管理权限，
// 成员数不能超过企业订阅层级的上限。
func (s *TeamService) AddMember(enterpriseId, callerUserId, userId string, role model.MemberRole) (*model.MembershipResp, error) {
	// 1. 权限校验
	caller, err := s.callerMembership(enterpriseId, callerUserId)
	if err != nil {
		return nil, err
	}
	if !caller.Role.Capability().CanManageMembers {
		return nil, errs.ErrForbidden
	}

	// 2. 角色必须属于封闭集合，owner 只能通过所有权转移产生
	if !role.Valid() || role == model.RoleOwner {
		return nil, fmt.Errorf("%w: role %s", errs.ErrInvalidTransition, role)
	}

	// 3. 订阅层级成员数上限
	sub, err := s.subscriptionRepo.GetSubscriptionByEnterprise(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("load subscription failed: %w", err)
	}
	if max := sub.EffectiveTier(s.now()).Capability().MaxMembers; max > 0 {
		count, err := s.membershipRepo.CountMembers(enterpriseId)
		if err != nil {
			return nil, fmt.Errorf("count members failed: %w", err)
		}
		if count >= int64(max) {
			return nil, errs.ErrPlanLimit
		}
	}

	// 4. 同一用户不可重复加入
	if _, err := s.membershipRepo.GetMemberByUser(enterpriseId, userId); err == nil {
		return nil, errs.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check membership failed: %w", err)
	}

	member := &model.TeamMembership{
		MemberId:     id.GetUUID(),
		EnterpriseId: enterpriseId,
		UserId:       userId,
		Role:         role,
		JoinDate:     s.now(),
	}
	if err := s.membershipRepo.AddMember(member); err != nil {
		log.Errorw("add team member failed", "enterpriseId", enterpriseId, "userId", userId, "error", err)
		return nil, fmt.Errorf("add team member failed: %w", err)
	}

	log.Infow("team member added", "enterpriseId", enterpriseId, "userId", userId, "role", role)
	return model.ToMembershipResp(member), nil
}

// ChangeRole 变更成员角色。
// 把最后一名 owner 降级会使企业失去控制权，必须拒绝。
func (s *TeamService) ChangeRole(enterpriseId, memberId, callerUserId string, newRole model.MemberRole) (*model.MembershipResp, error) {
	// 1. 权限校验
	caller, err := s.callerMembership(enterpriseId, callerUserId)
	if err != nil {
		return nil, err
	}
	if !caller.Role.Capability().CanManageMembers {
		return nil, errs.ErrForbidden
	}

	// 2. 目标成员必须存在且属于该企业
	member, err := s.membershipRepo.GetMemberById(memberId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load member failed: %w", err)
	}
	if member.EnterpriseId != enterpriseId {
		return nil, errs.ErrNotFound
	}

	// 3. 角色合法性。授予 owner 等同于所有权转移，需要 owner 权限
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: role %s", errs.ErrInvalidTransition, newRole)
	}
	if newRole == model.RoleOwner && !caller.Role.Capability().CanTransferOwner {
		return nil, errs.ErrForbidden
	}

	// 4. 最后一名 owner 不可降级
	if member.Role == model.RoleOwner && newRole != model.RoleOwner {
		owners, err := s.membershipRepo.CountOwners(enterpriseId)
		if err != nil {
			return nil, fmt.Errorf("count owners failed: %w", err)
		}
		if owners <= 1 {
			return nil, errs.ErrLastOwner
		}
	}

	if err := s.membershipRepo.UpdateMemberRole(memberId, newRole); err != nil {
		log.Errorw("change member role failed", "memberId", memberId, "error", err)
		return nil, fmt.Errorf("change member role failed: %w", err)
	}

	log.Infow("member role changed", "enterpriseId", enterpriseId, "memberId", memberId,
		"from", member.Role, "to", newRole)

	member.Role = newRole
	return model.ToMembershipResp(member), nil
}

// RemoveMember 移除成员。最后一名 owner 不可移除。
func (s *TeamService) RemoveMember(enterpriseId, memberId, callerUserId string) error {
	// 1. 权限校验，成员可以自行退出
	caller, err := s.callerMembership(enterpriseId, callerUserId)
	if err != nil {
		return err
	}

	member, err := s.membershipRepo.GetMemberById(memberId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("load member failed: %w", err)
	}
	if member.EnterpriseId != enterpriseId {
		return errs.ErrNotFound
	}

	selfRemoval := member.UserId == callerUserId
	if !selfRemoval && !caller.Role.Capability().CanManageMembers {
		return errs.ErrForbidden
	}

	// 2. 最后一名 owner 不可移除，自行退出也不行
	if member.Role == model.RoleOwner {
		owners, err := s.membershipRepo.CountOwners(enterpriseId)
		if err != nil {
			return fmt.Errorf("count owners failed: %w", err)
		}
		if owners <= 1 {
			return errs.ErrLastOwner
		}
	}

	if err := s.membershipRepo.RemoveMember(memberId); err != nil {
		log.Errorw("remove member failed", "memberId", memberId, "error", err)
		return fmt.Errorf("remove member failed: %w", err)
	}

	log.Infow("team member removed", "enterpriseId", enterpriseId, "memberId", memberId)
	return nil
}

// ListMembers 列出企业团队成员，调用者必须是成员
func (s *TeamService) ListMembers(enterpriseId, callerUserId string) ([]*model.MembershipResp, error) {
	caller, err := s.callerMembership(enterpriseId, callerUserId)
	if err != nil {
		return nil, err
	}
	if !caller.Role.Capability().CanView {
		return nil, errs.ErrForbidden
	}

	members, err := s.membershipRepo.ListMembers(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list members failed: %w", err)
	}
	resps := make([]*model.MembershipResp, 0, len(members))
	for i := range members {
		resps = append(resps, model.ToMembershipResp(&members[i]))
	}
	return resps, nil
}
