package services

import (
	"fmt"
	"time"

	"github.com/mgiannak/office-tasks/internal/constants"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
)

// StatsService computes the dashboard aggregates.
type StatsService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// DashboardStats holds the aggregate counts plus the latest tasks.
type DashboardStats struct {
	UsersCount    int64
	ProjectsCount int64
	TasksCount    int64
	OverdueCount  int64
	LatestTasks   []models.Task
}

// Dashboard returns the counts and the 10 most recently created tasks,
// newest id first.
func (s *StatsService) Dashboard(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.UsersCount, err = s.userRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.ProjectsCount, err = s.projectRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if stats.TasksCount, err = s.taskRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if stats.OverdueCount, err = s.taskRepo.CountOverdue(now); err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	if stats.LatestTasks, err = s.taskRepo.Latest(constants.DashboardLatestTasks); err != nil {
		return nil, fmt.Errorf("failed to fetch latest tasks: %w", err)
	}

	return stats, nil
}
