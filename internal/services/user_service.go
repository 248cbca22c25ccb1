package services

import (
	"errors"
	"fmt"

	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user administration rules.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UserInput carries validated form values for creating or editing a
// user. Name fields are already trimmed; phone fields are nil when
// blank. Password is optional and only meaningful for admins.
type UserInput struct {
	Rank          models.Rank
	FirstName     string
	LastName      string
	InternalPhone *string
	MobilePhone   *string
	Active        bool
	IsAdmin       bool
	Password      string
}

// Create creates a user. A credential is stored only when the user is
// an admin and a password was supplied.
func (s *UserService) Create(input UserInput) (*models.User, error) {
	user := &models.User{
		Rank:          input.Rank,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		InternalPhone: input.InternalPhone,
		MobilePhone:   input.MobilePhone,
		Active:        input.Active,
		IsAdmin:       input.IsAdmin,
	}

	if input.IsAdmin && input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update edits a user. A new password replaces the hash only while the
// user stays an admin; clearing the admin flag erases the credential
// no matter what was submitted.
func (s *UserService) Update(id uint64, input UserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Rank = input.Rank
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.InternalPhone = input.InternalPhone
	user.MobilePhone = input.MobilePhone
	user.Active = input.Active
	user.IsAdmin = input.IsAdmin

	if user.IsAdmin && input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}
	if !user.IsAdmin {
		user.PasswordHash = nil
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// List returns all users ordered by last name, then first name.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// ListActive returns active users ordered by last name, then first name.
func (s *UserService) ListActive() ([]models.User, error) {
	return s.userRepo.ListActive()
}

// Get returns a user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
