package repository

import (
	"github.com/mgiannak/office-tasks/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLastName finds a user by exact last name, lowest id first
func (r *GormUserRepository) FindByLastName(lastName string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("last_name = ?", lastName).Order("id").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by last name, then first name
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("last_name, first_name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListActive returns active users ordered by last name, then first name
func (r *GormUserRepository) ListActive() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("active = ?", true).Order("last_name, first_name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Count returns the total number of users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountActiveByIDs counts how many of the given IDs are active users
func (r *GormUserRepository) CountActiveByIDs(userIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ? AND active = ?", userIDs, true).
		Count(&count).Error
	return count, err
}
