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

package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/id"
	"github.com/earthcare/network/pkg/log"
)

type TaskService struct {
	taskRepo       repo.ITaskRepository
	enterpriseRepo repo.IEnterpriseRepository
}

func NewTaskService(
	taskRepo repo.ITaskRepository,
	enterpriseRepo repo.IEnterpriseRepository,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		enterpriseRepo: enterpriseRepo,
	}
}

// CreateTask 创建任务，初始状态 open
func (s *TaskService) CreateTask(req *model.CreateTaskReq) (*model.CrmTask, error) {
	if _, err := s.enterpriseRepo.GetEnterpriseById(req.EnterpriseId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load enterprise failed: %w", err)
	}

	task := &model.CrmTask{
		TaskId:        id.GetULID(),
		EnterpriseId:  req.EnterpriseId,
		OpportunityId: req.OpportunityId,
		Title:         req.Title,
		Status:        model.TaskChart.Initial(),
		AssigneeId:    req.AssigneeId,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	if err := s.taskRepo.CreateTask(task); err != nil {
		log.Errorw("create task failed", "enterpriseId", req.EnterpriseId, "error", err)
		return nil, fmt.Errorf("create task failed: %w", err)
	}

	log.Infow("task created", "taskId", task.TaskId, "enterpriseId", task.EnterpriseId)
	return task, nil
}

// UpdateTask 更新任务。状态变更必须是状态图允许的流转。
func (s *TaskService) UpdateTask(taskId string, req *model.UpdateTaskReq) (*model.CrmTask, error) {
	task, err := s.taskRepo.GetTaskById(taskId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load task failed: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Status != nil && *req.Status != task.Status {
		if err := model.TaskChart.Step(task.Status, *req.Status); err != nil {
			return nil, err
		}
		updates["status"] = *req.Status
		task.Status = *req.Status
	}
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
		task.Title = *req.Title
	}
	if req.AssigneeId != nil {
		updates["assignee_id"] = *req.AssigneeId
		task.AssigneeId = *req.AssigneeId
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
		task.DueDate = req.DueDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
		task.Notes = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.taskRepo.UpdateTask(taskId, updates); err != nil {
			log.Errorw("update task failed", "taskId", taskId, "error", err)
			return nil, fmt.Errorf("update task failed: %w", err)
		}
	}

	return task, nil
}

// GetTask 获取任务
func (s *TaskService) GetTask(taskId string) (*model.CrmTask, error) {
	task, err := s.taskRepo.GetTaskById(taskId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load task failed: %w", err)
	}
	return task, nil
}

// ListTasks 列出企业任务
func (s *TaskService) ListTasks(enterpriseId string) ([]model.CrmTask, error) {
	tasks, err := s.taskRepo.ListTasksByEnterprise(enterpriseId)
	if err != nil {
		return nil, fmt.Errorf("list tasks failed: %w", err)
	}
	return tasks, nil
}
