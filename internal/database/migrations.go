package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the query-critical indexes for the listing and
// filter paths.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task filter/sort paths
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_deadline", "deadline"},

		// Assignee filter subquery
		{"task_assignees", "idx_task_assignees_task_id", "task_id"},
		{"task_assignees", "idx_task_assignees_user_id", "user_id"},

		// Detail preloads
		{"task_comments", "idx_task_comments_task_id", "task_id"},
		{"project_attachments", "idx_project_attachments_project_id", "project_id"},

		// Login lookup
		{"users", "idx_users_last_name", "last_name"},
	}

	for _, idx := range indexes {
		sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
