package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// ParseTaskStatus converts user input into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return st, nil
	}
	return "", fmt.Errorf("invalid task status: %q", s)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ParseTaskPriority converts user input into a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("invalid task priority: %q", s)
}

type Task struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	ProjectID uint64 `gorm:"not null;index" json:"project_id"`

	Title       string `gorm:"type:varchar(120);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	AssignDate   *time.Time `gorm:"type:date" json:"assign_date"`
	Deadline     *time.Time `gorm:"type:date;index" json:"deadline"`
	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date"`

	Status   TaskStatus   `gorm:"type:varchar(20);not null;default:'backlog';index" json:"status"`
	Priority TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project   Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Assignees []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	Comments  []TaskComment  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// IsOverdue reports whether the task's deadline has passed without a
// recorded delivery, relative to the calendar date of now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.DeliveryDate != nil {
		return false
	}
	today := Today(now)
	return t.Deadline.Before(today)
}

// Today truncates now to midnight in its own location.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
