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

// Package errs holds the error taxonomy shared by the repo, service and
// router layers. Each sentinel maps to a distinct response code; none may be
// silently swallowed.
package errs

import (
	"errors"

	"github.com/earthcare/network/pkg/statemachine"
)

var (
	// ErrNotFound unknown token or entity.
	ErrNotFound = errors.New("not found")

	// ErrExpired the invitation is past expiresAt. Takes precedence over
	// ErrNotFound for known tokens.
	ErrExpired = errors.New("invitation expired")

	// ErrAlreadyClaimed the enterprise is no longer unclaimed.
	ErrAlreadyClaimed = errors.New("enterprise already claimed")

	// ErrInvalidTransition a state change the chart does not define.
	// Shared with pkg/statemachine so chart errors match directly.
	ErrInvalidTransition = statemachine.ErrInvalidTransition

	// ErrUnauthorized no authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden the identity lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrLastOwner the operation would leave the enterprise without an owner.
	ErrLastOwner = errors.New("last owner violation")

	// ErrConflict uniqueness violations (duplicate name, duplicate active invitation).
	ErrConflict = errors.New("conflict")

	// ErrPlanLimit the enterprise subscription tier does not allow the feature.
	ErrPlanLimit = errors.New("not available on current plan")
)
