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
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidTransition is returned when a transition is not defined in the chart.
// Callers match it with errors.Is.
var ErrInvalidTransition = errors.New("invalid transition")

// Chart is a generic transition chart for states that are persisted outside
// the process (database rows). Unlike an in-memory FSM it carries no current
// state; callers pass the stored state and the desired target.
//
// A Chart is safe for concurrent use.
type Chart[T comparable] struct {
	mu sync.RWMutex

	initial T
	// from state -> list of valid next states
	transitions map[T][]T
}

// NewChart creates a transition chart with the given initial state.
func NewChart[T comparable](initial T) *Chart[T] {
	return &Chart[T]{
		initial:     initial,
		transitions: make(map[T][]T),
	}
}

// Allow registers valid transitions from a source state.
func (c *Chart[T]) Allow(from T, to ...T) *Chart[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, target := range to {
		if !slices.Contains(c.transitions[from], target) {
			c.transitions[from] = append(c.transitions[from], target)
		}
	}
	return c
}

// Initial returns the chart's initial state.
func (c *Chart[T]) Initial() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initial
}

// Can reports whether a transition from one state to another is valid.
func (c *Chart[T]) Can(from, to T) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.transitions[from], to)
}

// Step validates a transition and fails with ErrInvalidTransition when the
// chart does not define it. A transition to the same state is NOT a no-op;
// it fails unless explicitly allowed.
func (c *Chart[T]) Step(from, to T) error {
	if !c.Can(from, to) {
		return fmt.Errorf("%w: %v → %v", ErrInvalidTransition, from, to)
	}
	return nil
}

// NextStates returns all valid next states from the given state.
func (c *Chart[T]) NextStates(from T) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if states, ok := c.transitions[from]; ok {
		result := make([]T, len(states))
		copy(result, states)
		return result
	}
	return []T{}
}

// IsTerminal reports whether a state has no outgoing transitions.
func (c *Chart[T]) IsTerminal(state T) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.transitions[state]) == 0
}

// States returns all states mentioned by the chart.
func (c *Chart[T]) States() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[T]bool)
	set[c.initial] = true
	for from, tos := range c.transitions {
		set[from] = true
		for _, to := range tos {
			set[to] = true
		}
	}
	states := make([]T, 0, len(set))
	for s := range set {
		states = append(states, s)
	}
	return states
}
