package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/dto"
	apierrors "github.com/mgiannak/office-tasks/internal/errors"
	"github.com/mgiannak/office-tasks/internal/middleware"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/services"
)

// AdminProjectHandler serves the project administration surface,
// including attachment links.
type AdminProjectHandler struct {
	projectService *services.ProjectService
}

// NewAdminProjectHandler creates a new AdminProjectHandler.
func NewAdminProjectHandler(projectService *services.ProjectService) *AdminProjectHandler {
	return &AdminProjectHandler{
		projectService: projectService,
	}
}

// ProjectForm is the submitted project create/edit form.
type ProjectForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// AttachmentForm is the submitted attachment form.
type AttachmentForm struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// List returns all projects, newest first, plus the status options.
func (h *AdminProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"statuses": []models.ProjectStatus{models.ProjectStatusActive, models.ProjectStatusArchived},
		"notices":  middleware.TakeNotices(c),
	})
}

// Create creates a project. A project with no tasks is incomplete by
// convention, so the response points the flow straight into task
// creation for the new project.
func (h *AdminProjectHandler) Create(c *gin.Context) {
	var form ProjectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateProjectForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	project, err := h.projectService.Create(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	middleware.AddFlash(c, "Project created (add at least one task).")
	c.JSON(http.StatusCreated, gin.H{
		"project": dto.ToProjectDTO(*project),
		"next":    fmt.Sprintf("/admin/tasks/options?project_id=%d", project.ID),
	})
}

// Update edits a project. A missing id redirects back to the listing.
func (h *AdminProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var form ProjectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateProjectForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	project, err := h.projectService.Update(id, input)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			middleware.AddFlash(c, "Project not found.")
			c.Redirect(http.StatusSeeOther, "/admin/projects")
			return
		}
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	middleware.AddFlash(c, "Project updated.")
	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// ListAttachments returns a project with its attachment links. A
// missing project redirects back to the project listing.
func (h *AdminProjectHandler) ListAttachments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			middleware.AddFlash(c, "Project not found.")
			c.Redirect(http.StatusSeeOther, "/admin/projects")
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

// CreateAttachment records an attachment link under a project. The
// path is stored verbatim, with no reachability or safety checks.
func (h *AdminProjectHandler) CreateAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var form AttachmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fields := make(map[string]string)
	label := strings.TrimSpace(form.Label)
	if label == "" {
		fields["label"] = "Label is required."
	}
	path := strings.TrimSpace(form.Path)
	if path == "" {
		fields["path"] = "Path/URL is required."
	}
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	attachment, err := h.projectService.AddAttachment(id, label, path)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			middleware.AddFlash(c, "Project not found.")
			c.Redirect(http.StatusSeeOther, "/admin/projects")
			return
		}
		apierrors.InternalError(c, "Failed to create attachment")
		return
	}

	middleware.AddFlash(c, "Attachment link added.")
	c.JSON(http.StatusCreated, gin.H{"attachment": dto.ToAttachmentDTO(*attachment)})
}

func validateProjectForm(form ProjectForm) (services.ProjectInput, map[string]string) {
	fields := make(map[string]string)

	title := strings.TrimSpace(form.Title)
	if title == "" {
		fields["title"] = "Title is required."
	}

	status, err := models.ParseProjectStatus(form.Status)
	if err != nil {
		fields["status"] = "Status must be active or archived."
	}

	input := services.ProjectInput{
		Title:       title,
		Description: form.Description,
		Status:      status,
	}

	return input, fields
}
