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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
)

func newTaskFixture(t *testing.T) *TaskService {
	t.Helper()

	enterprises := newFakeEnterpriseRepo()
	require.NoError(t, enterprises.CreateEnterprise(&model.Enterprise{
		EnterpriseId: "ent-1",
		Name:         "Loop Materials",
		Category:     model.CategoryCircularEconomy,
		ClaimStatus:  model.ClaimClaimed,
		IsEnabled:    1,
	}))

	return NewTaskService(newFakeTaskRepo(), enterprises)
}

func TestTaskLifecycle(t *testing.T) {
	svc := newTaskFixture(t)

	task, err := svc.CreateTask(&model.CreateTaskReq{
		EnterpriseId: "ent-1",
		Title:        "Schedule site visit",
		AssigneeId:   "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskOpen, task.Status)

	inProgress := model.TaskInProgress
	task, err = svc.UpdateTask(task.TaskId, &model.UpdateTaskReq{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, task.Status)

	done := model.TaskDone
	task, err = svc.UpdateTask(task.TaskId, &model.UpdateTaskReq{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, model.TaskDone, task.Status)

	// done is terminal
	reopen := model.TaskOpen
	_, err = svc.UpdateTask(task.TaskId, &model.UpdateTaskReq{Status: &reopen})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestTaskOpenCanCloseDirectly(t *testing.T) {
	svc := newTaskFixture(t)

	task, err := svc.CreateTask(&model.CreateTaskReq{
		EnterpriseId: "ent-1",
		Title:        "Send intro email",
	})
	require.NoError(t, err)

	done := model.TaskDone
	task, err = svc.UpdateTask(task.TaskId, &model.UpdateTaskReq{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, model.TaskDone, task.Status)
}

func TestTaskUnknownEnterprise(t *testing.T) {
	svc := newTaskFixture(t)

	_, err := svc.CreateTask(&model.CreateTaskReq{
		EnterpriseId: "ent-missing",
		Title:        "Orphan task",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTaskFieldUpdates(t *testing.T) {
	svc := newTaskFixture(t)

	task, err := svc.CreateTask(&model.CreateTaskReq{
		EnterpriseId: "ent-1",
		Title:        "Draft proposal",
	})
	require.NoError(t, err)

	title := "Draft proposal v2"
	assignee := "user-2"
	notes := "include recycling volume estimates"
	task, err = svc.UpdateTask(task.TaskId, &model.UpdateTaskReq{
		Title:      &title,
		AssigneeId: &assignee,
		Notes:      &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, title, task.Title)
	assert.Equal(t, assignee, task.AssigneeId)
	assert.Equal(t, notes, task.Notes)

	stored, err := svc.GetTask(task.TaskId)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)

	_, err = svc.GetTask("task-missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
