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
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
)

// in-memory repository fakes backed by maps, guarded by a single mutex so
// concurrency tests exercise the same one-winner semantics as the database

type fakeEnterpriseRepo struct {
	mu          sync.Mutex
	enterprises map[string]*model.Enterprise
}

func newFakeEnterpriseRepo() *fakeEnterpriseRepo {
	return &fakeEnterpriseRepo{enterprises: make(map[string]*model.Enterprise)}
}

func (f *fakeEnterpriseRepo) CreateEnterprise(e *model.Enterprise) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.enterprises[e.EnterpriseId] = &cp
	return nil
}

func (f *fakeEnterpriseRepo) UpdateEnterprise(enterpriseId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enterprises[enterpriseId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		e.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		e.Description = v.(string)
	}
	if v, ok := updates["website"]; ok {
		e.Website = v.(string)
	}
	if v, ok := updates["location"]; ok {
		e.Location = v.(string)
	}
	return nil
}

func (f *fakeEnterpriseRepo) GetEnterpriseById(enterpriseId string) (*model.Enterprise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enterprises[enterpriseId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnterpriseRepo) ListEnterprises(query *model.EnterpriseQueryReq) ([]*model.Enterprise, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Enterprise
	for _, e := range f.enterprises {
		cp := *e
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnterpriseRepo) CheckEnterpriseNameExists(name string, exclude ...string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.enterprises {
		if e.Name == name && (len(exclude) == 0 || e.EnterpriseId != exclude[0]) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnterpriseRepo) UpdateClaimStatus(enterpriseId string, from, to model.ClaimState) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enterprises[enterpriseId]
	if !ok || e.ClaimStatus != from {
		return false, nil
	}
	e.ClaimStatus = to
	return true, nil
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts map[string]*model.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[string]*model.Contact)}
}

func (f *fakeContactRepo) CreateContact(c *model.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.contacts[c.ContactId] = &cp
	return nil
}

func (f *fakeContactRepo) UpdateContact(contactId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[contactId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["full_name"]; ok {
		c.FullName = v.(string)
	}
	if v, ok := updates["email"]; ok {
		c.Email = v.(string)
	}
	if v, ok := updates["invite_status"]; ok {
		c.InviteStatus = v.(model.InviteState)
	}
	if v, ok := updates["claim_status"]; ok {
		c.ClaimStatus = v.(model.ClaimState)
	}
	return nil
}

func (f *fakeContactRepo) GetContactById(contactId string) (*model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[contactId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContactRepo) ListContactsByEnterprise(enterpriseId string) ([]model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Contact
	for _, c := range f.contacts {
		if c.EnterpriseId == enterpriseId {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) UpdateInviteStatus(contactId string, status model.InviteState) error {
	return f.UpdateContact(contactId, map[string]interface{}{"invite_status": status})
}

func (f *fakeContactRepo) UpdateLeadScore(contactId string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[contactId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.LeadScore = score
	return nil
}

type fakeInvitationRepo struct {
	mu          sync.Mutex
	invitations map[string]*model.ClaimInvitation // by invitationId
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]*model.ClaimInvitation)}
}

func (f *fakeInvitationRepo) CreateInvitation(inv *model.ClaimInvitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *inv
	f.invitations[inv.InvitationId] = &cp
	return nil
}

func (f *fakeInvitationRepo) GetInvitationByToken(token string) (*model.ClaimInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invitations {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) GetInvitationById(invitationId string) (*model.ClaimInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[invitationId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) GetPendingInvitation(enterpriseId, contactId string) (*model.ClaimInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invitations {
		if inv.EnterpriseId == enterpriseId && inv.ContactId == contactId && inv.Status == model.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) ListInvitationsByEnterprise(enterpriseId string) ([]model.ClaimInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ClaimInvitation
	for _, inv := range f.invitations {
		if inv.EnterpriseId == enterpriseId {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateInvitationStatus(invitationId string, status model.InvitationState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[invitationId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvitationRepo) MarkExpiredBefore(deadline time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var affected int64
	for _, inv := range f.invitations {
		if inv.Status == model.InvitationPending && inv.ExpiresAt.Before(deadline) {
			inv.Status = model.InvitationExpired
			affected++
		}
	}
	return affected, nil
}

type fakeMembershipRepo struct {
	mu      sync.Mutex
	members map[string]*model.TeamMembership // by memberId
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{members: make(map[string]*model.TeamMembership)}
}

func (f *fakeMembershipRepo) AddMember(m *model.TeamMembership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.members[m.MemberId] = &cp
	return nil
}

func (f *fakeMembershipRepo) GetMemberById(memberId string) (*model.TeamMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembershipRepo) GetMemberByUser(enterpriseId, userId string) (*model.TeamMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.EnterpriseId == enterpriseId && m.UserId == userId {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepo) ListMembers(enterpriseId string) ([]model.TeamMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TeamMembership
	for _, m := range f.members {
		if m.EnterpriseId == enterpriseId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) CountMembers(enterpriseId string) (int64, error) {
	members, _ := f.ListMembers(enterpriseId)
	return int64(len(members)), nil
}

func (f *fakeMembershipRepo) CountOwners(enterpriseId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.members {
		if m.EnterpriseId == enterpriseId && m.Role == model.RoleOwner {
			count++
		}
	}
	return count, nil
}

func (f *fakeMembershipRepo) UpdateMemberRole(memberId string, role model.MemberRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Role = role
	return nil
}

func (f *fakeMembershipRepo) RemoveMember(memberId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, memberId)
	return nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*model.Subscription // by enterpriseId
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*model.Subscription)}
}

func (f *fakeSubscriptionRepo) UpsertSubscription(s *model.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.subs[s.EnterpriseId] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) GetSubscriptionByEnterprise(enterpriseId string) (*model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[enterpriseId]
	if !ok {
		return nil, nil // no subscription behaves like free
	}
	cp := *s
	return &cp, nil
}

type fakeOpportunityRepo struct {
	mu   sync.Mutex
	opps map[string]*model.Opportunity
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{opps: make(map[string]*model.Opportunity)}
}

func (f *fakeOpportunityRepo) CreateOpportunity(o *model.Opportunity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.opps[o.OpportunityId] = &cp
	return nil
}

func (f *fakeOpportunityRepo) UpdateOpportunity(opportunityId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.opps[opportunityId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["stage"]; ok {
		o.Stage = v.(model.OpportunityStage)
	}
	if v, ok := updates["title"]; ok {
		o.Title = v.(string)
	}
	if v, ok := updates["amount"]; ok {
		o.Amount = v.(int64)
	}
	return nil
}

func (f *fakeOpportunityRepo) GetOpportunityById(opportunityId string) (*model.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.opps[opportunityId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOpportunityRepo) ListOpportunitiesByEnterprise(enterpriseId string) ([]model.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Opportunity
	for _, o := range f.opps {
		if o.EnterpriseId == enterpriseId {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.UserId] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CheckUsernameExists(username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// fakeCache in-memory stand-in for the redis session and preview cache
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	if v, ok := f.entries[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fmt.Sprint(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := f.entries[key]; ok {
			delete(f.entries, key)
			removed++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*model.CrmTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*model.CrmTask)}
}

func (f *fakeTaskRepo) CreateTask(t *model.CrmTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tasks[t.TaskId] = &cp
	return nil
}

func (f *fakeTaskRepo) UpdateTask(taskId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"]; ok {
		t.Status = v.(model.TaskStatus)
	}
	if v, ok := updates["title"]; ok {
		t.Title = v.(string)
	}
	if v, ok := updates["assignee_id"]; ok {
		t.AssigneeId = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		t.Notes = v.(string)
	}
	return nil
}

func (f *fakeTaskRepo) GetTaskById(taskId string) (*model.CrmTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) ListTasksByEnterprise(enterpriseId string) ([]model.CrmTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CrmTask
	for _, t := range f.tasks {
		if t.EnterpriseId == enterpriseId {
			out = append(out, *t)
		}
	}
	return out, nil
}

// fakeClaimRepo mirrors the transactional claim: the enterprise row is the
// serialization point, exactly one caller may move it off unclaimed.
type fakeClaimRepo struct {
	mu          sync.Mutex
	enterprises *fakeEnterpriseRepo
	invitations *fakeInvitationRepo
	contacts    *fakeContactRepo
	memberships *fakeMembershipRepo
}

func (f *fakeClaimRepo) ExecuteClaim(inv *model.ClaimInvitation, userId, memberId string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed, err := f.enterprises.UpdateClaimStatus(inv.EnterpriseId, model.ClaimUnclaimed, model.ClaimClaimed)
	if err != nil {
		return err
	}
	if !changed {
		return errs.ErrAlreadyClaimed
	}
	if err := f.enterprises.UpdateEnterpriseOwner(inv.EnterpriseId, userId); err != nil {
		return err
	}
	if err := f.invitations.UpdateInvitationStatus(inv.InvitationId, model.InvitationAccepted); err != nil {
		return err
	}
	contact, err := f.contacts.GetContactById(inv.ContactId)
	if err != nil {
		return err
	}
	contactUpdates := map[string]interface{}{
		"claim_status": model.ClaimClaimed,
	}
	if model.InviteChart.Can(contact.InviteStatus, model.InviteSignedUp) {
		contactUpdates["invite_status"] = model.InviteSignedUp
	}
	if err := f.contacts.UpdateContact(inv.ContactId, contactUpdates); err != nil {
		return err
	}
	return f.memberships.AddMember(&model.TeamMembership{
		MemberId:     memberId,
		EnterpriseId: inv.EnterpriseId,
		UserId:       userId,
		Role:         model.RoleOwner,
		JoinDate:     now,
	})
}

// UpdateEnterpriseOwner test helper mirroring the owner column write of the
// claim transaction.
func (f *fakeEnterpriseRepo) UpdateEnterpriseOwner(enterpriseId, userId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enterprises[enterpriseId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.OwnerUserId = userId
	return nil
}
