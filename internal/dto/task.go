package dto

import (
	"fmt"
	"time"

	"github.com/mgiannak/office-tasks/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	ProjectID    uint64              `json:"project_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	AssignDate   *string             `json:"assign_date"`
	Deadline     *string             `json:"deadline"`
	DeliveryDate *string             `json:"delivery_date"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	Overdue      bool                `json:"overdue"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Project      *ProjectDTO         `json:"project,omitempty"`
	Assignees    []UserDTO           `json:"assignees,omitempty"`
	Comments     []CommentDTO        `json:"comments,omitempty"`
}

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	AuthorID  uint64    `json:"author_id"`
	Author    *UserDTO  `json:"author,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFiltersDTO echoes back the filter values a task listing was
// built with, so the client can restore the filter controls.
type TaskFiltersDTO struct {
	Status     *models.TaskStatus `json:"status"`
	ProjectID  *uint64            `json:"project_id"`
	AssigneeID *uint64            `json:"assignee_id"`
	Overdue    bool               `json:"overdue"`
}

// TaskListResponse carries the filtered tasks plus the user and
// project lists needed to build the filter controls.
type TaskListResponse struct {
	Tasks    []TaskDTO      `json:"tasks"`
	Users    []UserDTO      `json:"users"`
	Projects []ProjectDTO   `json:"projects"`
	Filters  TaskFiltersDTO `json:"filters"`
	Notices  []string       `json:"notices,omitempty"`
}

// DashboardResponse carries the aggregate counts and the latest tasks.
type DashboardResponse struct {
	UsersCount    int64     `json:"users_count"`
	ProjectsCount int64     `json:"projects_count"`
	TasksCount    int64     `json:"tasks_count"`
	OverdueCount  int64     `json:"overdue_count"`
	LatestTasks   []TaskDTO `json:"latest_tasks"`
	Notices       []string  `json:"notices,omitempty"`
}

// TaskFormOptions carries the selection lists for the task form:
// projects ordered by title, active users ordered by last/first name.
type TaskFormOptions struct {
	Projects   []ProjectOptionDTO    `json:"projects"`
	Assignees  []UserOptionDTO       `json:"assignees"`
	Statuses   []models.TaskStatus   `json:"statuses"`
	Priorities []models.TaskPriority `json:"priorities"`
	ProjectID  *uint64               `json:"project_id,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	d := TaskDTO{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		AssignDate:   formatDate(task.AssignDate),
		Deadline:     formatDate(task.Deadline),
		DeliveryDate: formatDate(task.DeliveryDate),
		Status:       task.Status,
		Priority:     task.Priority,
		Overdue:      task.IsOverdue(time.Now()),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include project if preloaded
	if task.Project.ID != 0 {
		project := ToProjectDTO(task.Project)
		d.Project = &project
	}

	// Include assignees if preloaded
	if len(task.Assignees) > 0 {
		d.Assignees = make([]UserDTO, len(task.Assignees))
		for i, assignment := range task.Assignees {
			d.Assignees[i] = ToUserDTO(assignment.User)
		}
	}

	// Include comments if preloaded
	if len(task.Comments) > 0 {
		d.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			d.Comments[i] = ToCommentDTO(comment)
		}
	}

	return d
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToCommentDTO converts a TaskComment model
func ToCommentDTO(comment models.TaskComment) CommentDTO {
	d := CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		d.Author = &author
	}
	return d
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func formatProjectOption(project models.Project) string {
	return fmt.Sprintf("%s (#%d)", project.Title, project.ID)
}
