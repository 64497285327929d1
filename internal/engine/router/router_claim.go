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

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/errs"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/middleware"
)

func (rt *Router) claimRouter(r fiber.Router, auth fiber.Handler) {
	claimGroup := r.Group("/enterprises/claim")
	{
		// 认领预览，凭令牌访问，无需登录
		claimGroup.Get("/:token", rt.resolveClaim)

		// 执行认领，认领人必须已登录
		claimGroup.Post("/:token", auth, rt.executeClaim)
	}
}

// resolveClaim 按令牌解析认领预览
func (rt *Router) resolveClaim(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.ClaimTokenIsEmpty, c.Path())
	}

	preview, err := rt.claimService.ResolveClaim(c.UserContext(), token)
	if err != nil {
		return repError(c, err, httpx.ClaimTokenNotFound, httpx.InvitationAlreadyExists)
	}

	c.Locals(consts.DETAIL, preview)
	return nil
}

// executeClaim 执行认领，认领人成为企业 owner
func (rt *Router) executeClaim(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.ClaimTokenIsEmpty, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return httpx.WithRepErrStatus(c, fiber.StatusUnauthorized, httpx.Unauthorized, c.Path())
	}

	enterprise, err := rt.claimService.ExecuteClaim(c.UserContext(), token, claims.UserId)
	if err != nil {
		// GET 预览对过期令牌回 410，执行认领是状态冲突，回 409
		if errors.Is(err, errs.ErrExpired) {
			return httpx.WithRepErrStatus(c, fiber.StatusConflict, httpx.ClaimInvitationExpired, c.Path())
		}
		return repError(c, err, httpx.ClaimTokenNotFound, httpx.InvitationAlreadyExists)
	}

	c.Locals(consts.DETAIL, enterprise)
	return nil
}
