package services

import (
	"errors"
	"fmt"

	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// ProjectInput carries validated form values for a project. Title is
// already trimmed and non-empty.
type ProjectInput struct {
	Title       string
	Description string
	Status      models.ProjectStatus
}

// Create creates a project. The caller is expected to continue into
// task creation; a project without tasks is incomplete by convention.
func (s *ProjectService) Create(input ProjectInput) (*models.Project, error) {
	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Update edits a project.
func (s *ProjectService) Update(id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Status = input.Status

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// List returns all projects, newest first.
func (s *ProjectService) List() ([]models.Project, error) {
	return s.projectRepo.List()
}

// ListByTitle returns all projects ordered by title, for form options.
func (s *ProjectService) ListByTitle() ([]models.Project, error) {
	return s.projectRepo.ListByTitle()
}

// Get returns a project with its tasks and attachments.
func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Tasks", "Attachments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Delete removes a project and cascades everything it owns.
func (s *ProjectService) Delete(id uint64) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddAttachment records a labeled path or URL under a project. The
// path is stored as-is; it is never fetched or checked.
func (s *ProjectService) AddAttachment(projectID uint64, label, path string) (*models.ProjectAttachment, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	attachment := &models.ProjectAttachment{
		ProjectID: projectID,
		Label:     label,
		Path:      path,
	}
	if err := s.projectRepo.CreateAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	return attachment, nil
}
