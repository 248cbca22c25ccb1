package repository

import (
	"time"

	"github.com/mgiannak/office-tasks/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByLastName finds a user by exact last name. When several
	// users share the last name, the lowest id wins.
	FindByLastName(lastName string) (*models.User, error)

	// List returns all users ordered by last name, then first name
	List() ([]models.User, error)

	// ListActive returns active users ordered by last name, then first name
	ListActive() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Count returns the total number of users
	Count() (int64, error)

	// CountActiveByIDs counts how many of the given IDs are active users
	CountActiveByIDs(userIDs []uint64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns all projects, newest first
	List() ([]models.Project, error)

	// ListByTitle returns all projects ordered by title
	ListByTitle() ([]models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project and cascades its tasks, their
	// assignments and comments, and the project's attachments
	Delete(id uint64) error

	// Count returns the total number of projects
	Count() (int64, error)

	// CreateAttachment adds an attachment link under a project
	CreateAttachment(attachment *models.ProjectAttachment) error
}

// TaskFilter holds the conjunctive filters for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	ProjectID  *uint64
	AssigneeID *uint64
	// OverdueOn, when set, restricts to tasks overdue as of that moment
	OverdueOn *time.Time
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignees creates a task and its assignment rows in one transaction
	CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest id first
	List(filter TaskFilter) ([]models.Task, error)

	// UpdateWithAssignees saves a task and replaces its assignee set
	// wholesale in one transaction
	UpdateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// Delete removes a task together with its assignments and comments
	Delete(id uint64) error

	// Latest returns the most recently created tasks, newest id first
	Latest(limit int) ([]models.Task, error)

	// Count returns the total number of tasks
	Count() (int64, error)

	// CountOverdue counts tasks overdue as of now
	CountOverdue(now time.Time) (int64, error)

	// CreateComment appends a comment to a task
	CreateComment(comment *models.TaskComment) error
}
