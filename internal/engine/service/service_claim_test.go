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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
)

type claimFixture struct {
	enterprises *fakeEnterpriseRepo
	contacts    *fakeContactRepo
	invitations *fakeInvitationRepo
	memberships *fakeMembershipRepo
	cache       *fakeCache
	svc         *ClaimService
	now         time.Time
}

func newClaimFixture(t *testing.T) *claimFixture {
	t.Helper()

	f := &claimFixture{
		enterprises: newFakeEnterpriseRepo(),
		contacts:    newFakeContactRepo(),
		invitations: newFakeInvitationRepo(),
		memberships: newFakeMembershipRepo(),
		cache:       newFakeCache(),
		now:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	claimRepo := &fakeClaimRepo{
		enterprises: f.enterprises,
		invitations: f.invitations,
		contacts:    f.contacts,
		memberships: f.memberships,
	}
	f.svc = NewClaimService(claimRepo, f.invitations, f.enterprises, f.contacts, f.cache)
	f.svc.now = func() time.Time { return f.now }

	require.NoError(t, f.enterprises.CreateEnterprise(&model.Enterprise{
		EnterpriseId: "ent-1",
		Name:         "Terra Verde Farms",
		Category:     model.CategoryRegenerativeAg,
		ClaimStatus:  model.ClaimUnclaimed,
		IsEnabled:    1,
	}))
	require.NoError(t, f.contacts.CreateContact(&model.Contact{
		ContactId:    "person-1",
		EnterpriseId: "ent-1",
		FullName:     "Ada Moreno",
		Email:        "ada@terraverde.example",
		InviteStatus: model.InviteInvited,
		ClaimStatus:  model.ClaimUnclaimed,
	}))
	require.NoError(t, f.invitations.CreateInvitation(&model.ClaimInvitation{
		InvitationId: "inv-1",
		EnterpriseId: "ent-1",
		ContactId:    "person-1",
		Token:        "tok-valid",
		InvitedEmail: "ada@terraverde.example",
		Status:       model.InvitationPending,
		InvitedAt:    f.now.Add(-24 * time.Hour),
		ExpiresAt:    f.now.Add(24 * time.Hour),
	}))
	return f
}

func TestResolveClaim_UnknownToken(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.svc.ResolveClaim(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestResolveClaim_ExpiredWinsOverStoredStatus(t *testing.T) {
	f := newClaimFixture(t)

	// stored status is still pending, only the clock has passed the deadline
	require.NoError(t, f.invitations.CreateInvitation(&model.ClaimInvitation{
		InvitationId: "inv-stale",
		EnterpriseId: "ent-1",
		ContactId:    "person-1",
		Token:        "tok-stale",
		Status:       model.InvitationPending,
		InvitedAt:    f.now.Add(-72 * time.Hour),
		ExpiresAt:    f.now.Add(-time.Hour),
	}))

	_, err := f.svc.ResolveClaim(context.Background(), "tok-stale")
	assert.ErrorIs(t, err, errs.ErrExpired)
}

func TestResolveClaim_AcceptedInvitation(t *testing.T) {
	f := newClaimFixture(t)
	require.NoError(t, f.invitations.UpdateInvitationStatus("inv-1", model.InvitationAccepted))

	_, err := f.svc.ResolveClaim(context.Background(), "tok-valid")
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
}

func TestResolveClaim_Preview(t *testing.T) {
	f := newClaimFixture(t)

	preview, err := f.svc.ResolveClaim(context.Background(), "tok-valid")
	require.NoError(t, err)

	assert.Equal(t, "ent-1", preview.Enterprise.EnterpriseId)
	assert.Equal(t, model.ClaimUnclaimed, preview.Enterprise.ClaimStatus)
	assert.Equal(t, "person-1", preview.Contact.ContactId)
	assert.Equal(t, model.InvitationPending, preview.Invitation.Status)
	// the token is write-once at creation, a preview must not echo it
	assert.Empty(t, preview.Invitation.Token)
}

func TestResolveClaim_CachedPreviewExpiresWithClock(t *testing.T) {
	f := newClaimFixture(t)

	// first resolve populates the preview cache
	_, err := f.svc.ResolveClaim(context.Background(), "tok-valid")
	require.NoError(t, err)
	_, cached := f.cache.entries[consts.ClaimPreviewKey+"tok-valid"]
	require.True(t, cached)

	// the deadline passes while the cache entry is still live
	f.now = f.now.Add(25 * time.Hour)

	_, err = f.svc.ResolveClaim(context.Background(), "tok-valid")
	assert.ErrorIs(t, err, errs.ErrExpired)

	// the stale entry is evicted
	_, cached = f.cache.entries[consts.ClaimPreviewKey+"tok-valid"]
	assert.False(t, cached)
}

func TestResolveClaim_SiblingPreviewInvalidatedByClaim(t *testing.T) {
	f := newClaimFixture(t)

	require.NoError(t, f.contacts.CreateContact(&model.Contact{
		ContactId:    "person-2",
		EnterpriseId: "ent-1",
		FullName:     "Luis Okafor",
		Email:        "luis@terraverde.example",
		InviteStatus: model.InviteInvited,
		ClaimStatus:  model.ClaimUnclaimed,
	}))
	require.NoError(t, f.invitations.CreateInvitation(&model.ClaimInvitation{
		InvitationId: "inv-2",
		EnterpriseId: "ent-1",
		ContactId:    "person-2",
		Token:        "tok-sibling",
		InvitedEmail: "luis@terraverde.example",
		Status:       model.InvitationPending,
		InvitedAt:    f.now.Add(-24 * time.Hour),
		ExpiresAt:    f.now.Add(24 * time.Hour),
	}))

	// both previews end up cached
	_, err := f.svc.ResolveClaim(context.Background(), "tok-valid")
	require.NoError(t, err)
	_, err = f.svc.ResolveClaim(context.Background(), "tok-sibling")
	require.NoError(t, err)

	_, err = f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-9")
	require.NoError(t, err)

	// the sibling preview may no longer show the enterprise as unclaimed
	_, err = f.svc.ResolveClaim(context.Background(), "tok-sibling")
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
}

func TestExecuteClaim_Success(t *testing.T) {
	f := newClaimFixture(t)

	enterprise, err := f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-9")
	require.NoError(t, err)

	assert.Equal(t, model.ClaimClaimed, enterprise.ClaimStatus)
	assert.Equal(t, "user-9", enterprise.OwnerUserId)

	inv, err := f.invitations.GetInvitationById("inv-1")
	require.NoError(t, err)
	assert.Equal(t, model.InvitationAccepted, inv.Status)

	contact, err := f.contacts.GetContactById("person-1")
	require.NoError(t, err)
	assert.Equal(t, model.InviteSignedUp, contact.InviteStatus)
	assert.Equal(t, model.ClaimClaimed, contact.ClaimStatus)

	owners, err := f.memberships.CountOwners("ent-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, owners)

	member, err := f.memberships.GetMemberByUser("ent-1", "user-9")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, member.Role)
}

func TestExecuteClaim_DoesNotRewindActiveContact(t *testing.T) {
	f := newClaimFixture(t)

	// an admin already walked the contact invited → signed_up → active
	require.NoError(t, f.contacts.UpdateInviteStatus("person-1", model.InviteSignedUp))
	require.NoError(t, f.contacts.UpdateInviteStatus("person-1", model.InviteActive))

	_, err := f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-9")
	require.NoError(t, err)

	contact, err := f.contacts.GetContactById("person-1")
	require.NoError(t, err)
	assert.Equal(t, model.InviteActive, contact.InviteStatus)
	assert.Equal(t, model.ClaimClaimed, contact.ClaimStatus)
}

func TestExecuteClaim_Expired(t *testing.T) {
	f := newClaimFixture(t)
	f.now = f.now.Add(72 * time.Hour)

	_, err := f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-9")
	assert.ErrorIs(t, err, errs.ErrExpired)
}

func TestExecuteClaim_SecondClaimerLoses(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-9")
	require.NoError(t, err)

	_, err = f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-10")
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)

	// the original owner keeps the enterprise
	enterprise, err := f.enterprises.GetEnterpriseById("ent-1")
	require.NoError(t, err)
	assert.Equal(t, "user-9", enterprise.OwnerUserId)
}

func TestExecuteClaim_ConcurrentOneWinner(t *testing.T) {
	f := newClaimFixture(t)

	const claimers = 8
	var wg sync.WaitGroup
	results := make(chan error, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		userId := string(rune('a' + i))
		go func() {
			defer wg.Done()
			_, err := f.svc.ExecuteClaim(context.Background(), "tok-valid", "user-"+userId)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, claimers-1, conflicts)

	owners, err := f.memberships.CountOwners("ent-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, owners)
}
