package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Todo indexes for filtering and sorting
		{"todos", "idx_todos_completed", "completed"},
		{"todos", "idx_todos_priority", "priority"},
		{"todos", "idx_todos_category_id", "category_id"},
		{"todos", "idx_todos_user_id", "user_id"},
		{"todos", "idx_todos_created_at", "created_at"},
		{"todos", "idx_todos_updated_at", "updated_at"},

		// Join table indexes
		{"todo_tags", "idx_todo_tags_tag_id", "tag_id"},
		{"todo_dependencies", "idx_todo_dependencies_depends_on_id", "depends_on_id"},

		// Owned child rows, looked up by parent on every detail read
		{"notes", "idx_notes_todo_id", "todo_id"},
		{"todo_histories", "idx_todo_histories_todo_id", "todo_id"},
		{"attachments", "idx_attachments_todo_id", "todo_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}
