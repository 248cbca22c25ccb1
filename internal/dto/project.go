package dto

import (
	"time"

	"github.com/mgiannak/office-tasks/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Tasks       []TaskDTO            `json:"tasks,omitempty"`
	Attachments []AttachmentDTO      `json:"attachments,omitempty"`
}

// AttachmentDTO represents a project attachment link. The path is an
// opaque reference rendered as a link, never fetched.
type AttachmentDTO struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	Label     string    `json:"label"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectOptionDTO represents a project in selection controls.
type ProjectOptionDTO struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	d := ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if len(project.Tasks) > 0 {
		d.Tasks = make([]TaskDTO, len(project.Tasks))
		for i, t := range project.Tasks {
			d.Tasks[i] = ToTaskDTO(t)
		}
	}
	if len(project.Attachments) > 0 {
		d.Attachments = make([]AttachmentDTO, len(project.Attachments))
		for i, a := range project.Attachments {
			d.Attachments[i] = ToAttachmentDTO(a)
		}
	}

	return d
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToAttachmentDTO converts a ProjectAttachment model
func ToAttachmentDTO(a models.ProjectAttachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Label:     a.Label,
		Path:      a.Path,
		CreatedAt: a.CreatedAt,
	}
}

// ToProjectOptionDTO converts a Project model to a selection option,
// labeled "title (#id)".
func ToProjectOptionDTO(project models.Project) ProjectOptionDTO {
	return ProjectOptionDTO{
		ID:    project.ID,
		Label: formatProjectOption(project),
	}
}
