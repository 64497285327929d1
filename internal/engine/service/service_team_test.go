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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
)

type teamFixture struct {
	memberships   *fakeMembershipRepo
	subscriptions *fakeSubscriptionRepo
	svc           *TeamService
	now           time.Time
}

func newTeamFixture(t *testing.T, tier model.SubscriptionTier) *teamFixture {
	t.Helper()

	f := &teamFixture{
		memberships:   newFakeMembershipRepo(),
		subscriptions: newFakeSubscriptionRepo(),
		now:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewTeamService(f.memberships, f.subscriptions)
	f.svc.now = func() time.Time { return f.now }

	if tier != "" {
		require.NoError(t, f.subscriptions.UpsertSubscription(&model.Subscription{
			SubscriptionId: "sub-1",
			EnterpriseId:   "ent-1",
			Tier:           tier,
		}))
	}

	// seeded team: one owner, one admin, one viewer
	for _, m := range []*model.TeamMembership{
		{MemberId: "m-owner", EnterpriseId: "ent-1", UserId: "user-owner", Role: model.RoleOwner, JoinDate: f.now},
		{MemberId: "m-admin", EnterpriseId: "ent-1", UserId: "user-admin", Role: model.RoleAdmin, JoinDate: f.now},
		{MemberId: "m-viewer", EnterpriseId: "ent-1", UserId: "user-viewer", Role: model.RoleViewer, JoinDate: f.now},
	} {
		require.NoError(t, f.memberships.AddMember(m))
	}
	return f
}

func TestChangeRole_LastOwnerCannotBeDemoted(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.ChangeRole("ent-1", "m-owner", "user-owner", model.RoleEditor)
	assert.ErrorIs(t, err, errs.ErrLastOwner)

	// the role is untouched
	member, err := f.memberships.GetMemberById("m-owner")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, member.Role)
}

func TestChangeRole_DemotionAllowedWithSecondOwner(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	// promote the admin to co-owner first
	_, err := f.svc.ChangeRole("ent-1", "m-admin", "user-owner", model.RoleOwner)
	require.NoError(t, err)

	member, err := f.svc.ChangeRole("ent-1", "m-owner", "user-admin", model.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, member.Role)
}

func TestChangeRole_OwnerGrantRequiresOwner(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	// admins manage members but cannot hand out ownership
	_, err := f.svc.ChangeRole("ent-1", "m-viewer", "user-admin", model.RoleOwner)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestChangeRole_ViewerCannotManage(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.ChangeRole("ent-1", "m-admin", "user-viewer", model.RoleEditor)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestChangeRole_OutsiderForbidden(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.ChangeRole("ent-1", "m-viewer", "user-stranger", model.RoleEditor)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestChangeRole_UnknownRole(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.ChangeRole("ent-1", "m-viewer", "user-owner", model.MemberRole("superuser"))
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestRemoveMember_LastOwnerCannotLeave(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	err := f.svc.RemoveMember("ent-1", "m-owner", "user-owner")
	assert.ErrorIs(t, err, errs.ErrLastOwner)
}

func TestRemoveMember_SelfRemoval(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	// a viewer may leave on their own
	require.NoError(t, f.svc.RemoveMember("ent-1", "m-viewer", "user-viewer"))

	_, err := f.memberships.GetMemberById("m-viewer")
	assert.Error(t, err)
}

func TestRemoveMember_ViewerCannotRemoveOthers(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	err := f.svc.RemoveMember("ent-1", "m-admin", "user-viewer")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestAddMember_PlanLimit(t *testing.T) {
	f := newTeamFixture(t, model.TierFree) // free allows 3 members, team is full

	_, err := f.svc.AddMember("ent-1", "user-owner", "user-new", model.RoleViewer)
	assert.ErrorIs(t, err, errs.ErrPlanLimit)
}

func TestAddMember_Duplicate(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.AddMember("ent-1", "user-owner", "user-viewer", model.RoleEditor)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestAddMember_OwnerRoleNotGrantable(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	_, err := f.svc.AddMember("ent-1", "user-owner", "user-new", model.RoleOwner)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestListMembers_RequiresMembership(t *testing.T) {
	f := newTeamFixture(t, model.TierProfessional)

	members, err := f.svc.ListMembers("ent-1", "user-viewer")
	require.NoError(t, err)
	assert.Len(t, members, 3)

	_, err = f.svc.ListMembers("ent-1", "user-stranger")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}
