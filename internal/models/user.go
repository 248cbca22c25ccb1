package models

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Rank      Rank   `gorm:"type:varchar(20);not null" json:"rank"`
	FirstName string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(50);not null;index" json:"last_name"`

	InternalPhone *string `gorm:"type:varchar(20)" json:"internal_phone"`
	MobilePhone   *string `gorm:"type:varchar(20)" json:"mobile_phone"`

	Active  bool `gorm:"not null;default:true" json:"active"`
	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	// Only admins carry a credential; demoting a user erases it.
	PasswordHash *string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assignments []TaskAssignee `gorm:"foreignKey:UserID" json:"-"`
	Comments    []TaskComment  `gorm:"foreignKey:AuthorID" json:"-"`
}

// DisplayName renders the user as "last first".
func (u User) DisplayName() string {
	return u.LastName + " " + u.FirstName
}
