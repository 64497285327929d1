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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role MemberRole
		want RoleCapability
	}{
		{RoleViewer, RoleCapability{CanView: true}},
		{RoleEditor, RoleCapability{CanView: true, CanEditProfile: true}},
		{RoleAdmin, RoleCapability{CanView: true, CanEditProfile: true, CanManageMembers: true}},
		{RoleOwner, RoleCapability{CanView: true, CanEditProfile: true, CanManageMembers: true, CanTransferOwner: true}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Capability())
			assert.True(t, tt.role.Valid())
		})
	}

	// unknown roles get no access at all
	assert.Equal(t, RoleCapability{}, MemberRole("superuser").Capability())
	assert.False(t, MemberRole("superuser").Valid())
}

func TestClaimChart(t *testing.T) {
	assert.Equal(t, ClaimUnclaimed, ClaimChart.Initial())
	assert.True(t, ClaimChart.Can(ClaimUnclaimed, ClaimClaimed))
	assert.True(t, ClaimChart.Can(ClaimClaimed, ClaimVerified))

	// no skipping, no going back
	assert.False(t, ClaimChart.Can(ClaimUnclaimed, ClaimVerified))
	assert.False(t, ClaimChart.Can(ClaimClaimed, ClaimUnclaimed))
	assert.False(t, ClaimChart.Can(ClaimVerified, ClaimClaimed))
	assert.True(t, ClaimChart.IsTerminal(ClaimVerified))
}

func TestInviteChart(t *testing.T) {
	assert.Equal(t, InviteNotInvited, InviteChart.Initial())
	assert.True(t, InviteChart.Can(InviteNotInvited, InviteInvited))
	assert.True(t, InviteChart.Can(InviteInvited, InviteSignedUp))
	assert.True(t, InviteChart.Can(InviteSignedUp, InviteActive))

	assert.False(t, InviteChart.Can(InviteNotInvited, InviteActive))
	assert.False(t, InviteChart.Can(InviteActive, InviteNotInvited))
	assert.True(t, InviteChart.IsTerminal(InviteActive))
}

func TestInvitationChart(t *testing.T) {
	assert.True(t, InvitationChart.Can(InvitationPending, InvitationAccepted))
	assert.True(t, InvitationChart.Can(InvitationPending, InvitationExpired))
	assert.False(t, InvitationChart.Can(InvitationExpired, InvitationAccepted))
	assert.False(t, InvitationChart.Can(InvitationAccepted, InvitationExpired))
	assert.True(t, InvitationChart.IsTerminal(InvitationAccepted))
	assert.True(t, InvitationChart.IsTerminal(InvitationExpired))
}

func TestInvitationExpiryIsClockDriven(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := &ClaimInvitation{
		Status:    InvitationPending,
		ExpiresAt: now.Add(time.Minute),
	}

	assert.False(t, inv.IsExpired(now))
	assert.True(t, inv.IsAcceptable(now))

	later := now.Add(2 * time.Minute)
	assert.True(t, inv.IsExpired(later))
	assert.False(t, inv.IsAcceptable(later))

	// stored status alone also blocks acceptance
	inv.Status = InvitationExpired
	assert.False(t, inv.IsAcceptable(now))
}

func TestTierCapabilities(t *testing.T) {
	assert.Equal(t, 3, TierFree.Capability().MaxMembers)
	assert.False(t, TierFree.Capability().CanSendInvites)

	assert.Equal(t, 10, TierStarter.Capability().MaxMembers)
	assert.True(t, TierStarter.Capability().CanSendInvites)
	assert.False(t, TierStarter.Capability().CanUseLeadScore)

	pro := TierProfessional.Capability()
	assert.Equal(t, 0, pro.MaxMembers)
	assert.True(t, pro.CanSendInvites)
	assert.True(t, pro.CanUseLeadScore)
	assert.True(t, pro.CanExportReports)

	// unknown tiers behave like free
	assert.Equal(t, TierFree.Capability(), SubscriptionTier("platinum").Capability())
}

func TestEffectiveTier(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var missing *Subscription
	assert.Equal(t, TierFree, missing.EffectiveTier(now))

	open := &Subscription{Tier: TierProfessional}
	assert.Equal(t, TierProfessional, open.EffectiveTier(now))

	future := now.Add(time.Hour)
	active := &Subscription{Tier: TierStarter, ValidUntil: &future}
	assert.Equal(t, TierStarter, active.EffectiveTier(now))

	past := now.Add(-time.Hour)
	lapsed := &Subscription{Tier: TierProfessional, ValidUntil: &past}
	assert.Equal(t, TierFree, lapsed.EffectiveTier(now))
}
