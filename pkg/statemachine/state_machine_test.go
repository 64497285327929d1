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

package statemachine

import (
	"errors"
	"testing"
)

type testState string

const (
	stateDraft     testState = "draft"
	statePublished testState = "published"
	stateArchived  testState = "archived"
)

func newTestChart() *Chart[testState] {
	return NewChart(stateDraft).
		Allow(stateDraft, statePublished).
		Allow(statePublished, stateArchived)
}

func TestChart_Can(t *testing.T) {
	chart := newTestChart()

	tests := []struct {
		name     string
		from     testState
		to       testState
		expected bool
	}{
		{"forward step", stateDraft, statePublished, true},
		{"second forward step", statePublished, stateArchived, true},
		{"skipping a state", stateDraft, stateArchived, false},
		{"reverse step", statePublished, stateDraft, false},
		{"self transition not allowed implicitly", stateDraft, stateDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chart.Can(tt.from, tt.to); got != tt.expected {
				t.Errorf("Can(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestChart_Step(t *testing.T) {
	chart := newTestChart()

	if err := chart.Step(stateDraft, statePublished); err != nil {
		t.Fatalf("Step(draft, published) = %v, want nil", err)
	}

	err := chart.Step(stateArchived, stateDraft)
	if err == nil {
		t.Fatal("Step(archived, draft) = nil, want error")
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Step error = %v, want ErrInvalidTransition", err)
	}
}

func TestChart_IsTerminal(t *testing.T) {
	chart := newTestChart()

	if chart.IsTerminal(stateDraft) {
		t.Error("draft should not be terminal")
	}
	if !chart.IsTerminal(stateArchived) {
		t.Error("archived should be terminal")
	}
}

func TestChart_NextStates(t *testing.T) {
	chart := newTestChart()

	next := chart.NextStates(stateDraft)
	if len(next) != 1 || next[0] != statePublished {
		t.Errorf("NextStates(draft) = %v, want [published]", next)
	}

	if got := chart.NextStates(stateArchived); len(got) != 0 {
		t.Errorf("NextStates(archived) = %v, want empty", got)
	}
}

func TestChart_Initial(t *testing.T) {
	chart := newTestChart()
	if chart.Initial() != stateDraft {
		t.Errorf("Initial() = %v, want draft", chart.Initial())
	}
}
