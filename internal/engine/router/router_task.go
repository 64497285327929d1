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

func (rt *Router) taskRouter(r fiber.Router, auth fiber.Handler) {
	taskGroup := r.Group("/tasks", auth)
	{
		// 创建任务
		taskGroup.Post("/", rt.createTask)

		// 任务详情
		taskGroup.Get("/:taskId", rt.getTask)

		// 更新任务
		taskGroup.Put("/:taskId", rt.updateTask)
	}

	// 企业任务列表
	r.Get("/enterprises/:enterpriseId/tasks", auth, rt.listTasks)
}

// createTask 创建任务
func (rt *Router) createTask(c *fiber.Ctx) error {
	var req model.CreateTaskReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse create task request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.EnterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	task, err := rt.taskService.CreateTask(&req)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, task)
	return nil
}

// getTask 任务详情
func (rt *Router) getTask(c *fiber.Ctx) error {
	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.BadRequest, c.Path())
	}

	task, err := rt.taskService.GetTask(taskId)
	if err != nil {
		return repError(c, err, httpx.TaskNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, task)
	return nil
}

// updateTask 更新任务
func (rt *Router) updateTask(c *fiber.Ctx) error {
	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.BadRequest, c.Path())
	}

	var req model.UpdateTaskReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse update task request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}

	task, err := rt.taskService.UpdateTask(taskId, &req)
	if err != nil {
		return repError(c, err, httpx.TaskNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, task)
	return nil
}

// listTasks 企业任务列表
func (rt *Router) listTasks(c *fiber.Ctx) error {
	enterpriseId := c.Params("enterpriseId")
	if enterpriseId == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.EnterpriseIdIsEmpty, c.Path())
	}

	tasks, err := rt.taskService.ListTasks(enterpriseId)
	if err != nil {
		return repError(c, err, httpx.EnterpriseNotFound, httpx.Failed)
	}

	c.Locals(consts.DETAIL, tasks)
	return nil
}
