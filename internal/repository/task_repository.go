package repository

import (
	"time"

	"github.com/mgiannak/office-tasks/internal/database"
	"github.com/mgiannak/office-tasks/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithAssignees creates the task row and its assignment rows atomically.
func (r *GormTaskRepository) CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return createAssignments(tx, task.ID, assigneeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, newest id first. Filters
// compose with AND.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.OverdueOn != nil {
		query = query.Scopes(database.Overdue(*filter.OverdueOn))
	}
	if filter.AssigneeID != nil {
		assigneeSubQuery := r.db.Model(&models.TaskAssignee{}).
			Select("1").
			Where("task_assignees.task_id = tasks.id").
			Where("task_assignees.user_id = ?", *filter.AssigneeID)
		query = query.Where("EXISTS (?)", assigneeSubQuery)
	}

	err := query.Order("tasks.id DESC").
		Preload("Project").
		Preload("Assignees").
		Preload("Assignees.User").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateWithAssignees saves the task and replaces its assignee set
// wholesale with the given IDs, all in one transaction.
func (r *GormTaskRepository) UpdateWithAssignees(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		return createAssignments(tx, task.ID, assigneeIDs)
	})
}

// Delete removes a task together with its assignments and comments
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// Latest returns the most recently created tasks, newest id first
func (r *GormTaskRepository) Latest(limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Order("id DESC").
		Limit(limit).
		Preload("Project").
		Preload("Assignees").
		Preload("Assignees.User").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Count returns the total number of tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

// CountOverdue counts tasks overdue as of now
func (r *GormTaskRepository) CountOverdue(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.Overdue(now)).
		Count(&count).Error
	return count, err
}

// CreateComment appends a comment to a task
func (r *GormTaskRepository) CreateComment(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

func createAssignments(tx *gorm.DB, taskID uint64, assigneeIDs []uint64) error {
	if len(assigneeIDs) == 0 {
		return nil
	}
	assignments := make([]models.TaskAssignee, len(assigneeIDs))
	for i, userID := range assigneeIDs {
		assignments[i] = models.TaskAssignee{
			TaskID: taskID,
			UserID: userID,
		}
	}
	return tx.Create(&assignments).Error
}
