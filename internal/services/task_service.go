package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeRequired = errors.New("task must have at least one assignee")
	ErrInvalidAssignee  = errors.New("one or more assignees do not exist or are not active")
)

// taskDetailPreloads is what task detail views need resolved.
var taskDetailPreloads = []string{"Project", "Assignees", "Assignees.User", "Comments", "Comments.Author"}

// TaskService handles task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// TaskInput carries validated form values for creating or editing a
// task. Title is already trimmed and non-empty; enums are already
// parsed.
type TaskInput struct {
	ProjectID    uint64
	Title        string
	Description  string
	AssignDate   *time.Time
	Deadline     *time.Time
	DeliveryDate *time.Time
	Status       models.TaskStatus
	Priority     models.TaskPriority
	AssigneeIDs  []uint64
}

// Create creates a task with its assignee set. At least one assignee
// is required here; the schema itself does not enforce a minimum.
func (s *TaskService) Create(input TaskInput) (*models.Task, error) {
	assigneeIDs, err := s.checkAssignees(input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	assignDate := input.AssignDate
	if assignDate == nil {
		today := models.Today(time.Now())
		assignDate = &today
	}

	task := &models.Task{
		ProjectID:    input.ProjectID,
		Title:        input.Title,
		Description:  input.Description,
		AssignDate:   assignDate,
		Deadline:     input.Deadline,
		DeliveryDate: input.DeliveryDate,
		Status:       input.Status,
		Priority:     input.Priority,
	}

	if err := s.taskRepo.CreateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// Update edits a task, replacing the assignee set wholesale with the
// submitted one.
func (s *TaskService) Update(id uint64, input TaskInput) (*models.Task, error) {
	assigneeIDs, err := s.checkAssignees(input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	task.ProjectID = input.ProjectID
	task.Title = input.Title
	task.Description = input.Description
	task.AssignDate = input.AssignDate
	task.Deadline = input.Deadline
	task.DeliveryDate = input.DeliveryDate
	task.Status = input.Status
	task.Priority = input.Priority

	if err := s.taskRepo.UpdateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// Get returns a task with its project, assignees and comments.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, taskDetailPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// List returns tasks matching the filter, newest id first.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task with its assignments and comments.
func (s *TaskService) Delete(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment appends a comment authored by the given user. Comments
// are always attributed to the acting admin, never to someone else.
func (s *TaskService) AddComment(taskID, authorID uint64, body string) (*models.TaskComment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.TaskComment{
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.taskRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// checkAssignees deduplicates the submitted ids and verifies that each
// one is an existing, active user.
func (s *TaskService) checkAssignees(assigneeIDs []uint64) ([]uint64, error) {
	if len(assigneeIDs) == 0 {
		return nil, ErrAssigneeRequired
	}

	ids := uniqueUint64(assigneeIDs)

	count, err := s.userRepo.CountActiveByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignees: %w", err)
	}
	if int(count) != len(ids) {
		return nil, ErrInvalidAssignee
	}

	return ids, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
