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

type enterpriseListResp struct {
	Total int64                   `json:"total"`
	Items []*model.EnterpriseResp `json:"items"`
}

func (rt *Router) enterpriseRouter(r fiber.Router, auth fiber.Handler) {
	enterpriseGroup := r.Group("/enterprises")
	{
		// 目录查询，公开
		enterpriseGroup.Get("/", rt.listEnterprises)

		// 企业详情，公开
		enterpriseGroup.Get("/:enterpriseId", rt.getEnterprise)

		// 创建目录档案
		enterpriseGroup.Post("/", auth, rt.createEnterprise)

		// 更新档案内容
		enterpriseGroup.Put("/:enterpriseId", auth, rt.updateEnterprise)
	}
}

// listEnterprises 目录查询
func (rt *Router) listEnterprises(c *fiber.Ctx) error {
	query := &model.EnterpriseQueryReq{
		Name:        c.Query("name"),
		Category:    c.Query("category"),
		ClaimStatus: c.Query("claimStatus"),
		Page:        c.QueryInt("page"),
		PageSize:    c.QueryInt("pageSize"),
	}

	enterprises, total, err := rt.enterpriseService.ListEnterprises(query)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.EnterpriseNameAlreadyUsed)
	}

	c.Locals(consts.DETAIL, &enterpriseListResp{Total: total, Items: enterprises})
	return nil
}

// getEnterprise 企业详情
func (rt *Router) getEnterprise(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	enterprise, err := rt.enterpriseService.GetEnterprise(enterpriseId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.EnterpriseNameAlreadyUsed)
	}

	c.Locals(consts.DETAIL, enterprise)
	return nil
}

// createEnterprise 创建目录档案
func (rt *Router) createEnterprise(c *fiber.Ctx) error {
	var req model.CreateEnterpriseReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create enterprise request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.Name == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.BadRequest, c.Path())
	}

	enterprise, err := rt.enterpriseService.CreateEnterprise(&req)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.EnterpriseNameAlreadyUsed)
	}

	c.Locals(consts.DETAIL, enterprise)
	return nil
}

// updateEnterprise 更新档案内容
func (rt *Router) updateEnterprise(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	var req model.UpdateEnterpriseReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update enterprise request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	claims := middleware.ClaimsFromCtx(c)
	enterprise, err := rt.enterpriseService.UpdateEnterprise(enterpriseId, claims.UserId, &req)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.EnterpriseNameAlreadyUsed)
	}

	c.Locals(consts.DETAIL, enterprise)
	return nil
}
