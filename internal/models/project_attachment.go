package models

import "time"

// ProjectAttachment stores a label plus an opaque path or URL.
// Nothing fetches or validates the path; rendering it as a link is the
// caller's concern.
type ProjectAttachment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	Label     string    `gorm:"type:varchar(120);not null" json:"label"`
	Path      string    `gorm:"type:varchar(500);not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}
