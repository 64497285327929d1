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
	"github.com/earthcare/network/pkg/log"
)

func (rt *Router) contactRouter(r fiber.Router, auth fiber.Handler) {
	contactGroup := r.Group("/contacts", auth)
	{
		// 创建联系人
		contactGroup.Post("/", rt.createContact)

		// 联系人详情
		contactGroup.Get("/:contactId", rt.getContact)

		// 更新联系人基础信息
		contactGroup.Put("/:contactId", rt.updateContact)

		// 触发 AI 评分
		contactGroup.Post("/:contactId/score", rt.scoreContact)
	}

	// 企业联系人列表
	r.Get("/enterprises/:enterpriseId/contacts", auth, rt.listContacts)
}

// createContact 创建联系人
func (rt *Router) createContact(c *fiber.Ctx) error {
	var req model.CreateContactReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create contact request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.EnterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	contact, err := rt.contactService.CreateContact(&req)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, contact)
	return nil
}

// getContact 联系人详情
func (rt *Router) getContact(c *fiber.Ctx) error {
	contactId := c.Params("contactId")
	if contactId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.PersonIdIsEmpty, c.Path())
	}

	contact, err := rt.contactService.GetContact(contactId)
	if err != nil {
		return repError(c, err, httpx.ContactNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, contact)
	return nil
}

// updateContact 更新联系人基础信息
func (rt *Router) updateContact(c *fiber.Ctx) error {
	contactId := c.Params("contactId")
	if contactId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.PersonIdIsEmpty, c.Path())
	}

	var req model.UpdateContactReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update contact request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	contact, err := rt.contactService.UpdateContact(contactId, &req)
	if err != nil {
		return repError(c, err, httpx.ContactNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, contact)
	return nil
}

// scoreContact 触发 AI 评分并持久化
func (rt *Router) scoreContact(c *fiber.Ctx) error {
	contactId := c.Params("contactId")
	if contactId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.PersonIdIsEmpty, c.Path())
	}

	contact, err := rt.leadScoreService.ScoreContact(c.UserContext(), contactId)
	if err != nil {
		return repError(c, err, httpx.ContactNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, contact)
	return nil
}

// listContacts 企业联系人列表
func (rt *Router) listContacts(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	contacts, err := rt.contactService.ListContacts(enterpriseId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, contacts)
	return nil
}
