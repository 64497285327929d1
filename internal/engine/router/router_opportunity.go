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

func (rt *Router) opportunityRouter(r fiber.Router, auth fiber.Handler) {
	oppGroup := r.Group("/opportunities", auth)
	{
		// 创建销售机会
		oppGroup.Post("/", rt.createOpportunity)

		// 机会详情
		oppGroup.Get("/:opportunityId", rt.getOpportunity)

		// 更新机会，阶段变更走状态图校验
		oppGroup.Put("/:opportunityId", rt.updateOpportunity)
	}

	// 企业机会列表
	r.Get("/enterprises/:enterpriseId/opportunities", auth, rt.listOpportunities)
}

// createOpportunity 创建销售机会
func (rt *Router) createOpportunity(c *fiber.Ctx) error {
	var req model.CreateOpportunityReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create opportunity request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.EnterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	opp, err := rt.opportunityService.CreateOpportunity(&req, claims.UserId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, opp)
	return nil
}

// getOpportunity 机会详情
func (rt *Router) getOpportunity(c *fiber.Ctx) error {
	opportunityId := c.Params("opportunityId")
	if opportunityId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.BadRequest, c.Path())
	}

	opp, err := rt.opportunityService.GetOpportunity(opportunityId)
	if err != nil {
		return repError(c, err, httpx.OpportunityNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, opp)
	return nil
}

// updateOpportunity 更新销售机会
func (rt *Router) updateOpportunity(c *fiber.Ctx) error {
	opportunityId := c.Params("opportunityId")
	if opportunityId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.BadRequest, c.Path())
	}

	var req model.UpdateOpportunityReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update opportunity request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	opp, err := rt.opportunityService.UpdateOpportunity(opportunityId, &req)
	if err != nil {
		return repError(c, err, httpx.OpportunityNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, opp)
	return nil
}

// listOpportunities 企业机会列表
func (rt *Router) listOpportunities(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	opps, err := rt.opportunityService.ListOpportunities(enterpriseId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, opps)
	return nil
}
