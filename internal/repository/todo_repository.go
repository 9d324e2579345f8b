package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo-tracker-api/internal/database"
	"todo-tracker-api/internal/models"
	"todo-tracker-api/internal/utils"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// withTodoRelations attaches the full preload chain used wherever a todo is
// returned with its relations. Notes and history load newest first; history
// is capped later during response assembly.
func withTodoRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Preload("Tags.Tag").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("notes.created_at DESC, notes.id DESC")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("todo_histories.created_at DESC, todo_histories.id DESC")
		}).
		Preload("Attachments").
		Preload("Dependencies").
		Preload("Dependencies.DependsOn").
		Preload("Dependents").
		Preload("Dependents.Todo")
}

// CreateWithRelations inserts the todo and all nested rows atomically.
func (r *GormTodoRepository) CreateWithRelations(todo *models.Todo, tagIDs []uint64, notes []string, dependencyIDs []uint64, history *models.TodoHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(todo).Error; err != nil {
			return err
		}

		if len(tagIDs) > 0 {
			joins := make([]models.TodoTag, len(tagIDs))
			for i, tagID := range tagIDs {
				joins[i] = models.TodoTag{TodoID: todo.ID, TagID: tagID}
			}
			if err := tx.Create(&joins).Error; err != nil {
				return err
			}
		}

		if len(notes) > 0 {
			rows := make([]models.Note, len(notes))
			for i, content := range notes {
				rows[i] = models.Note{TodoID: todo.ID, Content: content}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(dependencyIDs) > 0 {
			edges := make([]models.TodoDependency, len(dependencyIDs))
			for i, depID := range dependencyIDs {
				edges[i] = models.TodoDependency{TodoID: todo.ID, DependsOnID: depID}
			}
			if err := tx.Create(&edges).Error; err != nil {
				return err
			}
		}

		history.TodoID = todo.ID
		return tx.Create(history).Error
	})
}

// FindByID finds a todo by ID with optional preloading
func (r *GormTodoRepository) FindByID(id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// FindFull finds a todo with all relations loaded
func (r *GormTodoRepository) FindFull(id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := withTodoRelations(r.db).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves todos with filtering and pagination
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, int64, error) {
	query := r.db.Model(&models.Todo{})

	if filter.Completed != nil {
		query = query.Where("todos.completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("todos.priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		query = query.Where("todos.category_id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		query = query.Where("todos.user_id = ?", *filter.UserID)
	}
	if filter.TagID != nil {
		tagSubQuery := r.db.Model(&models.TodoTag{}).
			Select("1").
			Where("todo_tags.todo_id = todos.id").
			Where("todo_tags.tag_id = ?", *filter.TagID)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}
	if filter.Search != "" {
		// LOWER(...) LIKE instead of ILIKE so the predicate behaves the same
		// on postgres and the sqlite test database.
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(todos.title) LIKE ? OR LOWER(todos.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("todos.created_at DESC, todos.id DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		params := utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}
		listQuery = listQuery.Scopes(database.Paginate(params))
	}

	var todos []models.Todo
	if err := withTodoRelations(listQuery).Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// UpdateWithRelations saves scalar fields, applies relation set changes and
// appends the audit row atomically.
func (r *GormTodoRepository) UpdateWithRelations(todo *models.Todo, changes RelationChanges, history *models.TodoHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(todo).Error; err != nil {
			return err
		}

		if len(changes.RemoveTagIDs) > 0 {
			if err := tx.Where("todo_id = ? AND tag_id IN ?", todo.ID, changes.RemoveTagIDs).
				Delete(&models.TodoTag{}).Error; err != nil {
				return err
			}
		}
		if len(changes.AddTagIDs) > 0 {
			joins := make([]models.TodoTag, len(changes.AddTagIDs))
			for i, tagID := range changes.AddTagIDs {
				joins[i] = models.TodoTag{TodoID: todo.ID, TagID: tagID}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&joins).Error; err != nil {
				return err
			}
		}

		if len(changes.RemoveNoteIDs) > 0 {
			if err := tx.Where("id IN ? AND todo_id = ?", changes.RemoveNoteIDs, todo.ID).
				Delete(&models.Note{}).Error; err != nil {
				return err
			}
		}
		if len(changes.AddNotes) > 0 {
			rows := make([]models.Note, len(changes.AddNotes))
			for i, content := range changes.AddNotes {
				rows[i] = models.Note{TodoID: todo.ID, Content: content}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(changes.RemoveDependencyIDs) > 0 {
			if err := tx.Where("todo_id = ? AND depends_on_id IN ?", todo.ID, changes.RemoveDependencyIDs).
				Delete(&models.TodoDependency{}).Error; err != nil {
				return err
			}
		}
		if len(changes.AddDependencyIDs) > 0 {
			edges := make([]models.TodoDependency, len(changes.AddDependencyIDs))
			for i, depID := range changes.AddDependencyIDs {
				edges[i] = models.TodoDependency{TodoID: todo.ID, DependsOnID: depID}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error; err != nil {
				return err
			}
		}

		if history != nil {
			history.TodoID = todo.ID
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateWithHistory saves the todo and appends a history row atomically
func (r *GormTodoRepository) UpdateWithHistory(todo *models.Todo, history *models.TodoHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(todo).Error; err != nil {
			return err
		}

		history.TodoID = todo.ID
		return tx.Create(history).Error
	})
}

// Delete removes a todo and everything it owns. The child deletes mirror the
// database-level cascades so the behavior holds on stores without FK
// enforcement (the in-memory test database among them).
func (r *GormTodoRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&models.TodoTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ? OR depends_on_id = ?", id, id).Delete(&models.TodoDependency{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", id).Delete(&models.TodoHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Todo{}, id).Error
	})
}

// DirectDependencyIDs returns which of fromIDs already depend on toID
func (r *GormTodoRepository) DirectDependencyIDs(fromIDs []uint64, toID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.TodoDependency{}).
		Where("todo_id IN ? AND depends_on_id = ?", fromIDs, toID).
		Pluck("todo_id", &ids).Error
	return ids, err
}

// DependentRefs lists the todos that directly depend on the given todo
func (r *GormTodoRepository) DependentRefs(id uint64) ([]TodoRef, error) {
	var refs []TodoRef
	err := r.db.Model(&models.Todo{}).
		Select("todos.id, todos.title, todos.completed").
		Joins("JOIN todo_dependencies ON todo_dependencies.todo_id = todos.id").
		Where("todo_dependencies.depends_on_id = ?", id).
		Order("todos.id").
		Scan(&refs).Error
	return refs, err
}

// SimilarTodos lists other todos in the same category
func (r *GormTodoRepository) SimilarTodos(categoryID, excludeID uint64, limit int) ([]TodoRef, error) {
	var refs []TodoRef
	err := r.db.Model(&models.Todo{}).
		Select("id, title, completed").
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Scan(&refs).Error
	return refs, err
}

// UserTodos lists other todos belonging to the same user
func (r *GormTodoRepository) UserTodos(userID, excludeID uint64, limit int) ([]TodoRef, error) {
	var refs []TodoRef
	err := r.db.Model(&models.Todo{}).
		Select("id, title, completed").
		Where("user_id = ? AND id <> ?", userID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Scan(&refs).Error
	return refs, err
}

// RelatedByTags lists other todos sharing at least one tag with the given todo
func (r *GormTodoRepository) RelatedByTags(todoID uint64, limit int) ([]TodoRef, error) {
	tagSubQuery := r.db.Model(&models.TodoTag{}).
		Select("tag_id").
		Where("todo_id = ?", todoID)

	var refs []TodoRef
	err := r.db.Model(&models.Todo{}).
		Select("DISTINCT todos.id, todos.title, todos.completed").
		Joins("JOIN todo_tags ON todo_tags.todo_id = todos.id").
		Where("todo_tags.tag_id IN (?)", tagSubQuery).
		Where("todos.id <> ?", todoID).
		Limit(limit).
		Scan(&refs).Error
	return refs, err
}

// RelationCounts counts the todo's child rows and dependency edges
func (r *GormTodoRepository) RelationCounts(id uint64) (RelationCounts, error) {
	var counts RelationCounts

	type scope struct {
		model any
		where string
		out   *int64
	}
	scopes := []scope{
		{&models.Note{}, "todo_id = ?", &counts.Notes},
		{&models.Attachment{}, "todo_id = ?", &counts.Attachments},
		{&models.TodoHistory{}, "todo_id = ?", &counts.History},
		{&models.TodoTag{}, "todo_id = ?", &counts.Tags},
		{&models.TodoDependency{}, "todo_id = ?", &counts.Dependencies},
		{&models.TodoDependency{}, "depends_on_id = ?", &counts.Dependents},
	}

	for _, s := range scopes {
		if err := r.db.Model(s.model).Where(s.where, id).Count(s.out).Error; err != nil {
			return RelationCounts{}, err
		}
	}

	return counts, nil
}

// CountTodosByIDs counts how many of the given todo IDs exist
func (r *GormTodoRepository) CountTodosByIDs(ids []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Todo{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// CountTagsByIDs counts how many of the given tag IDs exist
func (r *GormTodoRepository) CountTagsByIDs(ids []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// UserExists reports whether a user row exists
func (r *GormTodoRepository) UserExists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryExists reports whether a category row exists
func (r *GormTodoRepository) CategoryExists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
