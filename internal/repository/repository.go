package repository

import (
	"time"

	"todo-tracker-api/internal/models"
)

// TodoFilter holds filtering and pagination options for listing todos. All
// predicates AND together; Search matches a case-insensitive substring of
// either title or description.
type TodoFilter struct {
	Completed  *bool
	Search     string
	Priority   *models.Priority
	CategoryID *uint64
	UserID     *uint64
	TagID      *uint64
	Page       int
	PageSize   int
}

// RelationChanges describes the additive/subtractive set mutations applied to
// a todo's relations during an update.
type RelationChanges struct {
	AddTagIDs           []uint64
	RemoveTagIDs        []uint64
	AddNotes            []string
	RemoveNoteIDs       []uint64
	AddDependencyIDs    []uint64
	RemoveDependencyIDs []uint64
}

// TodoRef is a minimal projection of a todo used in related/dependent lists.
type TodoRef struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// RecentTodo is the projection returned by RecentlyUpdated.
type RecentTodo struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PriorityCount is one bucket of the by-priority aggregate.
type PriorityCount struct {
	Priority models.Priority `json:"priority"`
	Count    int64           `json:"count"`
}

// CategoryCount is one bucket of the by-category aggregate.
type CategoryCount struct {
	CategoryID uint64 `json:"id"`
	Category   string `json:"category"`
	Count      int64  `json:"count"`
}

// TagCount is one bucket of the most-used-tags aggregate.
type TagCount struct {
	TagID uint64 `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CompletionStats holds a total/completed pair for one scope (system, user or
// category).
type CompletionStats struct {
	Total     int64
	Completed int64
}

// RelationCounts holds per-relation row counts for a single todo.
type RelationCounts struct {
	Notes        int64
	Attachments  int64
	History      int64
	Tags         int64
	Dependencies int64
	Dependents   int64
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// CreateWithRelations inserts a todo together with its tag joins, notes,
	// dependency edges and the CREATED history row in one transaction.
	CreateWithRelations(todo *models.Todo, tagIDs []uint64, notes []string, dependencyIDs []uint64, history *models.TodoHistory) error

	// FindByID finds a todo by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Todo, error)

	// FindFull finds a todo with every relation loaded, notes and history
	// sorted newest first
	FindFull(id uint64) (*models.Todo, error)

	// List retrieves todos with filtering and pagination, returning the page
	// and the count matching the filter
	List(filter TodoFilter) ([]models.Todo, int64, error)

	// UpdateWithRelations saves the todo's scalar fields, applies relation
	// set changes and appends a history row in one transaction. A nil
	// history skips the audit row.
	UpdateWithRelations(todo *models.Todo, changes RelationChanges, history *models.TodoHistory) error

	// UpdateWithHistory saves the todo's scalar fields and appends a history
	// row in one transaction
	UpdateWithHistory(todo *models.Todo, history *models.TodoHistory) error

	// Delete removes a todo and all of its owned child rows and dependency
	// edges (both directions) in one transaction
	Delete(id uint64) error

	// DirectDependencyIDs returns which of fromIDs already hold a direct
	// dependency edge pointing at toID
	DirectDependencyIDs(fromIDs []uint64, toID uint64) ([]uint64, error)

	// DependentRefs lists the todos that directly depend on the given todo
	DependentRefs(id uint64) ([]TodoRef, error)

	// SimilarTodos lists other todos in the same category
	SimilarTodos(categoryID, excludeID uint64, limit int) ([]TodoRef, error)

	// UserTodos lists other todos belonging to the same user
	UserTodos(userID, excludeID uint64, limit int) ([]TodoRef, error)

	// RelatedByTags lists other todos sharing at least one tag
	RelatedByTags(todoID uint64, limit int) ([]TodoRef, error)

	// RelationCounts counts the todo's child rows and dependency edges
	RelationCounts(id uint64) (RelationCounts, error)

	// CountTodosByIDs counts how many of the given todo IDs exist
	CountTodosByIDs(ids []uint64) (int64, error)

	// CountTagsByIDs counts how many of the given tag IDs exist
	CountTagsByIDs(ids []uint64) (int64, error)

	// UserExists reports whether a user row exists
	UserExists(id uint64) (bool, error)

	// CategoryExists reports whether a category row exists
	CategoryExists(id uint64) (bool, error)
}

// StatsRepository defines the interface for aggregate statistics reads
type StatsRepository interface {
	// SystemCompletion returns the unfiltered total and completed counts
	SystemCompletion() (CompletionStats, error)

	// UserCompletion returns completion counts scoped to one user
	UserCompletion(userID uint64) (CompletionStats, error)

	// CategoryCompletion returns completion counts scoped to one category
	CategoryCompletion(categoryID uint64) (CompletionStats, error)

	// AggregateByPriority groups todos by priority
	AggregateByPriority() ([]PriorityCount, error)

	// AggregateByCategory groups todos by category; zero-count categories
	// appear via a left join
	AggregateByCategory() ([]CategoryCount, error)

	// RecentlyUpdated lists todos updated within the trailing window
	RecentlyUpdated(windowDays, limit int) ([]RecentTodo, error)

	// MostUsedTags lists tags by descending count of associated todos
	MostUsedTags(limit int) ([]TagCount, error)
}
