package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/dto"
	apierrors "github.com/mgiannak/office-tasks/internal/errors"
	"github.com/mgiannak/office-tasks/internal/middleware"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"github.com/mgiannak/office-tasks/internal/services"
)

// AdminTaskHandler serves the task administration surface, including
// comments.
type AdminTaskHandler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
	userService    *services.UserService
}

// NewAdminTaskHandler creates a new AdminTaskHandler.
func NewAdminTaskHandler(taskService *services.TaskService, projectService *services.ProjectService, userService *services.UserService) *AdminTaskHandler {
	return &AdminTaskHandler{
		taskService:    taskService,
		projectService: projectService,
		userService:    userService,
	}
}

// TaskForm is the submitted task create/edit form. Dates are
// YYYY-MM-DD strings; empty means unset.
type TaskForm struct {
	ProjectID    uint64   `json:"project_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	AssignDate   string   `json:"assign_date"`
	Deadline     string   `json:"deadline"`
	DeliveryDate string   `json:"delivery_date"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	AssigneeIDs  []uint64 `json:"assignee_ids"`
}

// CommentForm is the submitted comment form.
type CommentForm struct {
	Body string `json:"body"`
}

// List returns all tasks, newest id first.
func (h *AdminTaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.List(repository.TaskFilter{})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":   dto.ToTaskDTOs(tasks),
		"notices": middleware.TakeNotices(c),
	})
}

// Options returns the selection lists for the task form: projects
// ordered by title, and active users only, each labeled with display
// name and rank. An optional project_id query prefills the project.
func (h *AdminTaskHandler) Options(c *gin.Context) {
	projects, err := h.projectService.ListByTitle()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	users, err := h.userService.ListActive()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	options := dto.TaskFormOptions{
		Projects:  make([]dto.ProjectOptionDTO, len(projects)),
		Assignees: make([]dto.UserOptionDTO, len(users)),
		Statuses: []models.TaskStatus{
			models.TaskStatusBacklog, models.TaskStatusInProgress,
			models.TaskStatusBlocked, models.TaskStatusDone,
		},
		Priorities: []models.TaskPriority{
			models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh,
		},
	}
	for i, p := range projects {
		options.Projects[i] = dto.ToProjectOptionDTO(p)
	}
	for i, u := range users {
		options.Assignees[i] = dto.ToUserOptionDTO(u)
	}

	if projectStr := c.Query("project_id"); projectStr != "" {
		if projectID, err := strconv.ParseUint(projectStr, 10, 64); err == nil {
			options.ProjectID = &projectID
		}
	}

	c.JSON(http.StatusOK, options)
}

// Create creates a task. At least one assignee must be selected;
// violations re-render the form rather than persisting anything.
func (h *AdminTaskHandler) Create(c *gin.Context) {
	var form TaskForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateTaskForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	task, err := h.taskService.Create(input)
	if err != nil {
		h.respondTaskError(c, err, form)
		return
	}

	middleware.AddFlash(c, "Task created.")
	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// Update edits a task; the submitted assignee set replaces the stored
// one wholesale. A missing id redirects back to the listing.
func (h *AdminTaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var form TaskForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateTaskForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	task, err := h.taskService.Update(id, input)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			middleware.AddFlash(c, "Task not found.")
			c.Redirect(http.StatusSeeOther, "/admin/tasks")
			return
		}
		h.respondTaskError(c, err, form)
		return
	}

	middleware.AddFlash(c, "Task updated.")
	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateComment appends a comment to a task. The author is always the
// authenticated admin; the form cannot name someone else.
func (h *AdminTaskHandler) CreateComment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	author, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var form CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	body := strings.TrimSpace(form.Body)
	if body == "" {
		apierrors.ValidationFailed(c, map[string]string{"body": "Comment body is required."}, form)
		return
	}

	comment, err := h.taskService.AddComment(id, author.ID, body)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			middleware.AddFlash(c, "Task not found.")
			c.Redirect(http.StatusSeeOther, "/admin/tasks")
			return
		}
		apierrors.InternalError(c, "Failed to create comment")
		return
	}

	middleware.AddFlash(c, "Comment added.")
	c.JSON(http.StatusCreated, gin.H{"comment": dto.ToCommentDTO(*comment)})
}

// respondTaskError maps service errors from create/update into the
// form re-render response.
func (h *AdminTaskHandler) respondTaskError(c *gin.Context, err error, form TaskForm) {
	switch {
	case errors.Is(err, services.ErrAssigneeRequired):
		apierrors.ValidationFailed(c, map[string]string{"assignee_ids": "Task must have at least one assignee."}, form)
	case errors.Is(err, services.ErrInvalidAssignee):
		apierrors.ValidationFailed(c, map[string]string{"assignee_ids": "Assignees must be existing active users."}, form)
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.ValidationFailed(c, map[string]string{"project_id": "Project does not exist."}, form)
	default:
		apierrors.InternalError(c, "Failed to save task")
	}
}

func validateTaskForm(form TaskForm) (services.TaskInput, map[string]string) {
	fields := make(map[string]string)

	if form.ProjectID == 0 {
		fields["project_id"] = "Project is required."
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		fields["title"] = "Title is required."
	}

	status, err := models.ParseTaskStatus(form.Status)
	if err != nil {
		fields["status"] = "Status must be backlog, in_progress, blocked or done."
	}
	priority, err := models.ParseTaskPriority(form.Priority)
	if err != nil {
		fields["priority"] = "Priority must be low, medium or high."
	}

	assignDate, err := parseDate(form.AssignDate)
	if err != nil {
		fields["assign_date"] = "Assign date must be YYYY-MM-DD."
	}
	deadline, err := parseDate(form.Deadline)
	if err != nil {
		fields["deadline"] = "Deadline must be YYYY-MM-DD."
	}
	deliveryDate, err := parseDate(form.DeliveryDate)
	if err != nil {
		fields["delivery_date"] = "Delivery date must be YYYY-MM-DD."
	}

	input := services.TaskInput{
		ProjectID:    form.ProjectID,
		Title:        title,
		Description:  form.Description,
		AssignDate:   assignDate,
		Deadline:     deadline,
		DeliveryDate: deliveryDate,
		Status:       status,
		Priority:     priority,
		AssigneeIDs:  form.AssigneeIDs,
	}

	return input, fields
}

// parseDate parses an optional YYYY-MM-DD value; empty means unset.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
