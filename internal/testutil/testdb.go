package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo-tracker-api/internal/models"
)

// NewDB opens an in-memory SQLite database with the full schema migrated.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Todo{},
		&models.TodoTag{},
		&models.Note{},
		&models.TodoHistory{},
		&models.Attachment{},
		&models.TodoDependency{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
