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

package repo

import (
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type ITaskRepository interface {
	CreateTask(t *model.CrmTask) error
	UpdateTask(taskId string, updates map[string]interface{}) error
	GetTaskById(taskId string) (*model.CrmTask, error)
	ListTasksByEnterprise(enterpriseId string) ([]model.CrmTask, error)
}

type TaskRepo struct {
	db database.DB
}

func NewTaskRepo(db database.DB) ITaskRepository {
	return &TaskRepo{db: db}
}

// CreateTask 创建任务
func (r *TaskRepo) CreateTask(t *model.CrmTask) error {
	return r.db.DB().Create(t).Error
}

// UpdateTask 更新任务
func (r *TaskRepo) UpdateTask(taskId string, updates map[string]interface{}) error {
	return r.db.DB().Model(&model.CrmTask{}).
		Where("task_id = ?", taskId).
		Updates(updates).Error
}

// GetTaskById 根据任务ID获取任务
func (r *TaskRepo) GetTaskById(taskId string) (*model.CrmTask, error) {
	var t model.CrmTask
	err := r.db.DB().Where("task_id = ?", taskId).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasksByEnterprise 列出企业下的任务
func (r *TaskRepo) ListTasksByEnterprise(enterpriseId string) ([]model.CrmTask, error) {
	var tasks []model.CrmTask
	err := r.db.DB().Where("enterprise_id = ?", enterpriseId).
		Order("task_id DESC").Find(&tasks).Error
	return tasks, err
}
