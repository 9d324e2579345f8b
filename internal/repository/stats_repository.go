package repository

import (
	"time"

	"gorm.io/gorm"

	"todo-tracker-api/internal/models"
)

// GormStatsRepository is a GORM implementation of StatsRepository. Every
// aggregate scans into int64 so counts serialize as ordinary JSON numbers.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

// SystemCompletion returns the unfiltered total and completed counts
func (r *GormStatsRepository) SystemCompletion() (CompletionStats, error) {
	return r.completion(r.db.Model(&models.Todo{}))
}

// UserCompletion returns completion counts scoped to one user
func (r *GormStatsRepository) UserCompletion(userID uint64) (CompletionStats, error) {
	return r.completion(r.db.Model(&models.Todo{}).Where("user_id = ?", userID))
}

// CategoryCompletion returns completion counts scoped to one category
func (r *GormStatsRepository) CategoryCompletion(categoryID uint64) (CompletionStats, error) {
	return r.completion(r.db.Model(&models.Todo{}).Where("category_id = ?", categoryID))
}

func (r *GormStatsRepository) completion(query *gorm.DB) (CompletionStats, error) {
	var stats CompletionStats

	if err := query.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return CompletionStats{}, err
	}
	if err := query.Session(&gorm.Session{}).Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return CompletionStats{}, err
	}

	return stats, nil
}

// AggregateByPriority groups todos by priority
func (r *GormStatsRepository) AggregateByPriority() ([]PriorityCount, error) {
	var rows []PriorityCount
	err := r.db.Model(&models.Todo{}).
		Select("todos.priority AS priority, COUNT(*) AS count").
		Group("todos.priority").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// AggregateByCategory groups todos by category. The left join keeps
// zero-count categories in the result; todos without a category are not
// bucketed.
func (r *GormStatsRepository) AggregateByCategory() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.Table("categories").
		Select("categories.id AS category_id, categories.name AS category, COUNT(todos.id) AS count").
		Joins("LEFT JOIN todos ON todos.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// RecentlyUpdated lists todos updated within the trailing window
func (r *GormStatsRepository) RecentlyUpdated(windowDays, limit int) ([]RecentTodo, error) {
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	var rows []RecentTodo
	err := r.db.Model(&models.Todo{}).
		Select("id, title, updated_at").
		Where("updated_at >= ?", cutoff).
		Order("updated_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// MostUsedTags lists tags by descending count of associated todos
func (r *GormStatsRepository) MostUsedTags(limit int) ([]TagCount, error) {
	var rows []TagCount
	err := r.db.Table("tags").
		Select("tags.id AS tag_id, tags.name AS name, COUNT(todo_tags.todo_id) AS count").
		Joins("LEFT JOIN todo_tags ON todo_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
