package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/mgiannak/office-tasks/internal/models"
)

// Overdue narrows a task query to overdue tasks: deadline set, no
// delivery date, deadline strictly before the calendar date of now.
func Overdue(now time.Time) func(db *gorm.DB) *gorm.DB {
	today := models.Today(now)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.deadline IS NOT NULL").
			Where("tasks.delivery_date IS NULL").
			Where("tasks.deadline < ?", today)
	}
}
