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

func newOpportunityFixture(t *testing.T) (*OpportunityService, *fakeOpportunityRepo) {
	t.Helper()

	enterprises := newFakeEnterpriseRepo()
	opportunities := newFakeOpportunityRepo()
	require.NoError(t, enterprises.CreateEnterprise(&model.Enterprise{
		EnterpriseId: "ent-1",
		Name:         "Loop Materials",
		Category:     model.CategoryCircularEconomy,
		ClaimStatus:  model.ClaimClaimed,
		IsEnabled:    1,
	}))

	svc := NewOpportunityService(opportunities, enterprises)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, opportunities
}

func TestOpportunityStageProgression(t *testing.T) {
	svc, _ := newOpportunityFixture(t)

	opp, err := svc.CreateOpportunity(&model.CreateOpportunityReq{
		EnterpriseId: "ent-1",
		Title:        "Pilot composting program",
		Amount:       250000,
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.StageProspecting, opp.Stage)
	assert.Equal(t, "USD", opp.Currency)

	for _, stage := range []model.OpportunityStage{
		model.StageQualified, model.StageProposal, model.StageWon,
	} {
		s := stage
		opp, err = svc.UpdateOpportunity(opp.OpportunityId, &model.UpdateOpportunityReq{Stage: &s})
		require.NoError(t, err)
		assert.Equal(t, stage, opp.Stage)
	}

	// won is terminal and the close date is stamped
	require.NotNil(t, opp.CloseDate)
	lost := model.StageLost
	_, err = svc.UpdateOpportunity(opp.OpportunityId, &model.UpdateOpportunityReq{Stage: &lost})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestOpportunityCannotSkipToWon(t *testing.T) {
	svc, _ := newOpportunityFixture(t)

	opp, err := svc.CreateOpportunity(&model.CreateOpportunityReq{
		EnterpriseId: "ent-1",
		Title:        "Grid storage retrofit",
	}, "user-1")
	require.NoError(t, err)

	won := model.StageWon
	_, err = svc.UpdateOpportunity(opp.OpportunityId, &model.UpdateOpportunityReq{Stage: &won})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestOpportunityLostFromAnyOpenStage(t *testing.T) {
	svc, _ := newOpportunityFixture(t)

	opp, err := svc.CreateOpportunity(&model.CreateOpportunityReq{
		EnterpriseId: "ent-1",
		Title:        "Community solar expansion",
	}, "user-1")
	require.NoError(t, err)

	lost := model.StageLost
	opp, err = svc.UpdateOpportunity(opp.OpportunityId, &model.UpdateOpportunityReq{Stage: &lost})
	require.NoError(t, err)
	assert.Equal(t, model.StageLost, opp.Stage)
	assert.NotNil(t, opp.CloseDate)
}

func TestCreateOpportunity_UnknownEnterprise(t *testing.T) {
	svc, _ := newOpportunityFixture(t)

	_, err := svc.CreateOpportunity(&model.CreateOpportunityReq{
		EnterpriseId: "ent-ghost",
		Title:        "Phantom deal",
	}, "user-1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
