package model

import (
	"time"

	"github.com/earthcare/network/pkg/statemachine"
)

// TaskStatus CRM 任务状态
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskChart 任务状态流转图，open 可直接完成
var TaskChart = statemachine.NewChart(TaskOpen).
	Allow(TaskOpen, TaskInProgress, TaskDone).
	Allow(TaskInProgress, TaskDone)

// CrmTask 任务表，可关联企业或销售机会
type CrmTask struct {
	BaseModel
	TaskId        string     `gorm:"column:task_id;uniqueIndex" json:"taskId"`
	EnterpriseId  string     `gorm:"column:enterprise_id;index" json:"enterpriseId"`
	OpportunityId string     `gorm:"column:opportunity_id;index" json:"opportunityId"`
	Title         string     `gorm:"column:title" json:"title"`
	Status        TaskStatus `gorm:"column:status;index" json:"status"`
	AssigneeId    string     `gorm:"column:assignee_id;index" json:"assigneeId"`
	DueDate       *time.Time `gorm:"column:due_date" json:"dueDate,omitempty"`
	Notes         string     `gorm:"column:notes" json:"notes"`
}

func (CrmTask) TableName() string {
	return "t_crm_task"
}

// CreateTaskReq create task request
type CreateTaskReq struct {
	EnterpriseId  string     `json:"enterpriseId" validate:"required"`
	OpportunityId string     `json:"opportunityId"`
	Title         string     `json:"title" validate:"required,min=1,max=256"`
	AssigneeId    string     `json:"assigneeId"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Notes         string     `json:"notes"`
}

// UpdateTaskReq update task request
type UpdateTaskReq struct {
	Title      *string     `json:"title,omitempty"`
	Status     *TaskStatus `json:"status,omitempty"`
	AssigneeId *string     `json:"assigneeId,omitempty"`
	DueDate    *time.Time  `json:"dueDate,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
}
