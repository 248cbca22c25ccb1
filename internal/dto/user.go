package dto

import (
	"time"

	"github.com/mgiannak/office-tasks/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64      `json:"id"`
	Rank          models.Rank `json:"rank"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	DisplayName   string      `json:"display_name"`
	InternalPhone *string     `json:"internal_phone"`
	MobilePhone   *string     `json:"mobile_phone"`
	Active        bool        `json:"active"`
	IsAdmin       bool        `json:"is_admin"`
	CreatedAt     time.Time   `json:"created_at"`
}

// UserOptionDTO represents a user in assignee selection controls,
// labeled "last first [rank]".
type UserOptionDTO struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Rank:          user.Rank,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		DisplayName:   user.DisplayName(),
		InternalPhone: user.InternalPhone,
		MobilePhone:   user.MobilePhone,
		Active:        user.Active,
		IsAdmin:       user.IsAdmin,
		CreatedAt:     user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// ToUserOptionDTO converts a User model to a selection option
func ToUserOptionDTO(user models.User) UserOptionDTO {
	return UserOptionDTO{
		ID:    user.ID,
		Label: user.DisplayName() + " [" + string(user.Rank) + "]",
	}
}
