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
	"github.com/gofiber/fiber/v2"

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/model"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/middleware"
	"github.com/earthcare/network/pkg/log"
)

func (rt *Router) adminRouter(r fiber.Router, auth fiber.Handler) {
	adminGroup := r.Group("/admin", auth, rt.requireAdmin)
	{
		// 签发认领邀请，token 只在该响应中出现一次
		adminGroup.Post("/invitations", rt.createInvitation)

		// 按企业查询邀请记录
		adminGroup.Get("/invitations", rt.listInvitations)

		// 手动推进联系人的邀请状态或认领状态
		adminGroup.Patch("/invitations/:personId", rt.updateContactStatus)
	}
}

// requireAdmin 平台管理员校验，普通成员不可触达 admin 接口
func (rt *Router) requireAdmin(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return httpx.WithRepErrStatus(c, fiber.StatusUnauthorized, httpx.Unauthorized, c.Path())
	}
	isAdmin, err := rt.authService.IsAdmin(claims.UserId)
	if err != nil {
		return repError(c, err, httpx.UserNotExist, httpx.UserAlreadyExist)
	}
	if !isAdmin {
		return httpx.WithRepErrStatus(c, fiber.StatusForbidden, httpx.PermissionDenied, c.Path())
	}
	return c.Next()
}

// createInvitation 为联系人签发认领邀请
func (rt *Router) createInvitation(c *fiber.Ctx) error {
	var req model.CreateInvitationReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create invitation request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.EnterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}
	if req.PersonId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.PersonIdIsEmpty, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	invitation, err := rt.invitationService.CreateInvitation(&req, claims.UserId)
	if err != nil {
		return repError(c, err, httpx.ContactNotFound, httpx.InvitationAlreadyExists)
	}

	c.Locals(consts.DETAIL, invitation)
	return nil
}

// listInvitations 按企业查询邀请记录
func (rt *Router) listInvitations(c *fiber.Ctx) error {
	enterpriseId := c.Query("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	invitations, err := rt.invitationService.ListInvitations(enterpriseId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.InvitationAlreadyExists)
	}

	c.Locals(consts.DETAIL, invitations)
	return nil
}

// updateContactStatus 管理员手动推进联系人状态
func (rt *Router) updateContactStatus(c *fiber.Ctx) error {
	personId := c.Params("personId")
	if personId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.PersonIdIsEmpty, c.Path())
	}

	var req model.UpdateInvitationReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update contact status request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	contact, err := rt.invitationService.UpdateContactStatus(personId, &req)
	if err != nil {
		return repError(c, err, httpx.ContactNotFound, httpx.InvitationAlreadyExists)
	}

	c.Locals(consts.DETAIL, contact)
	return nil
}
