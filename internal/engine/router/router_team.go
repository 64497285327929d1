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

type addMemberReq struct {
	UserId string           `json:"userId"`
	Role   model.MemberRole `json:"role"`
}

func (rt *Router) teamRouter(r fiber.Router, auth fiber.Handler) {
	teamGroup := r.Group("/enterprises/:enterpriseId/team", auth)
	{
		// 团队成员列表
		teamGroup.Get("/", rt.listMembers)

		// 添加成员
		teamGroup.Post("/", rt.addMember)

		// 变更成员角色
		teamGroup.Patch("/:memberId", rt.changeMemberRole)

		// 移除成员
		teamGroup.Delete("/:memberId", rt.removeMember)
	}
}

// listMembers 团队成员列表
func (rt *Router) listMembers(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	members, err := rt.teamService.ListMembers(enterpriseId, claims.UserId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, members)
	return nil
}

// addMember 添加团队成员
func (rt *Router) addMember(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	var req addMemberReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse add member request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	member, err := rt.teamService.AddMember(enterpriseId, claims.UserId, req.UserId, req.Role)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.UserAlreadyExist)
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

// changeMemberRole 变更成员角色
func (rt *Router) changeMemberRole(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	memberId := c.Params("memberId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}
	if memberId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.MemberIdIsEmpty, c.Path())
	}

	var req model.ChangeRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse change role request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	member, err := rt.teamService.ChangeRole(enterpriseId, memberId, claims.UserId, req.Role)
	if err != nil {
		return repError(c, err, httpx.MemberNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

// removeMember 移除团队成员
func (rt *Router) removeMember(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	memberId := c.Params("memberId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}
	if memberId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.MemberIdIsEmpty, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	if err := rt.teamService.RemoveMember(enterpriseId, memberId, claims.UserId); err != nil {
		return repError(c, err, httpx.MemberNotFound, httpx.Failed)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
