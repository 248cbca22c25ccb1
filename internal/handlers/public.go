package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/dto"
	apierrors "github.com/mgiannak/office-tasks/internal/errors"
	"github.com/mgiannak/office-tasks/internal/middleware"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"github.com/mgiannak/office-tasks/internal/services"
)

// PublicHandler serves the unauthenticated read-only views.
type PublicHandler struct {
	statsService   *services.StatsService
	userService    *services.UserService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(statsService *services.StatsService, userService *services.UserService, projectService *services.ProjectService, taskService *services.TaskService) *PublicHandler {
	return &PublicHandler{
		statsService:   statsService,
		userService:    userService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// Dashboard returns the aggregate counts and the 10 latest tasks.
func (h *PublicHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		UsersCount:    stats.UsersCount,
		ProjectsCount: stats.ProjectsCount,
		TasksCount:    stats.TasksCount,
		OverdueCount:  stats.OverdueCount,
		LatestTasks:   dto.ToTaskDTOs(stats.LatestTasks),
		Notices:       middleware.TakeNotices(c),
	})
}

// ListUsers returns all users ordered by last name, then first name.
func (h *PublicHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   dto.ToUserDTOs(users),
		"notices": middleware.TakeNotices(c),
	})
}

// GetUser returns a single user. A missing id renders as a null user,
// not an error.
func (h *PublicHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// ListProjects returns all projects, newest first.
func (h *PublicHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"notices":  middleware.TakeNotices(c),
	})
}

// GetProject returns a single project with its tasks and attachments.
// A missing id renders as a null project.
func (h *PublicHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusOK, gin.H{"project": nil, "notices": middleware.TakeNotices(c)})
			return
		}
		apierrors.InternalError(c, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": dto.ToProjectDTO(*project),
		"notices": middleware.TakeNotices(c),
	})
}

// ListTasks returns tasks filtered by status, project, assignee and
// overdue state. Filters compose with AND. The response also carries
// the user and project lists for the filter controls and echoes the
// selected filter values.
func (h *PublicHandler) ListTasks(c *gin.Context) {
	var filter repository.TaskFilter
	filters := dto.TaskFiltersDTO{}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := models.ParseTaskStatus(statusStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
		filters.Status = &status
	}
	if projectStr := c.Query("project_id"); projectStr != "" {
		projectID, err := strconv.ParseUint(projectStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id filter")
			return
		}
		filter.ProjectID = &projectID
		filters.ProjectID = &projectID
	}
	if assigneeStr := c.Query("assignee_id"); assigneeStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id filter")
			return
		}
		filter.AssigneeID = &assigneeID
		filters.AssigneeID = &assigneeID
	}
	if c.Query("overdue") == "1" {
		now := time.Now()
		filter.OverdueOn = &now
		filters.Overdue = true
	}

	tasks, err := h.taskService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	users, err := h.userService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	projects, err := h.projectService.ListByTitle()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:    dto.ToTaskDTOs(tasks),
		Users:    dto.ToUserDTOs(users),
		Projects: dto.ToProjectDTOs(projects),
		Filters:  filters,
		Notices:  middleware.TakeNotices(c),
	})
}

// GetTask returns a single task with its project, assignees and
// comments. A missing id renders as a null task.
func (h *PublicHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusOK, gin.H{"task": nil, "notices": middleware.TakeNotices(c)})
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":    dto.ToTaskDTO(*task),
		"notices": middleware.TakeNotices(c),
	})
}

// parseIDParam parses the :id path segment, responding 400 on garbage.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
