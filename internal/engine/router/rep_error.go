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

package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/earthcare/network/internal/engine/errs"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/log"
)

// repError 把错误分类映射为带语义状态码的响应。
// notFound 和 conflict 由各 handler 提供领域专属的错误码。
func repError(c *fiber.Ctx, err error, notFound, conflict *httpx.Response) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return httpx.WithRepErrStatus(c, fiber.StatusNotFound, notFound, c.Path())
	case errors.Is(err, errs.ErrExpired):
		return httpx.WithRepErrStatus(c, fiber.StatusGone, httpx.ClaimInvitationExpired, c.Path())
	case errors.Is(err, errs.ErrAlreadyClaimed):
		return httpx.WithRepErrStatus(c, fiber.StatusConflict, httpx.EnterpriseAlreadyClaimed, c.Path())
	case errors.Is(err, errs.ErrInvalidTransition):
		return httpx.WithRepErrStatus(c, fiber.StatusConflict, httpx.InvalidStatusTransition, c.Path())
	case errors.Is(err, errs.ErrUnauthorized):
		return httpx.WithRepErrStatus(c, fiber.StatusUnauthorized, httpx.AuthenticationFailed, c.Path())
	case errors.Is(err, errs.ErrForbidden):
		return httpx.WithRepErrStatus(c, fiber.StatusForbidden, httpx.PermissionDenied, c.Path())
	case errors.Is(err, errs.ErrLastOwner):
		return httpx.WithRepErrStatus(c, fiber.StatusConflict, httpx.LastOwnerViolation, c.Path())
	case errors.Is(err, errs.ErrConflict):
		return httpx.WithRepErrStatus(c, fiber.StatusConflict, conflict, c.Path())
	case errors.Is(err, errs.ErrPlanLimit):
		return httpx.WithRepErrStatus(c, fiber.StatusForbidden, httpx.FeatureNotInPlan, c.Path())
	default:
		log.Errorf("request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusInternalServerError, httpx.InternalError, c.Path())
	}
}
