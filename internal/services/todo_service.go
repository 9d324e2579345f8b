package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-tracker-api/internal/constants"
	"todo-tracker-api/internal/models"
	"todo-tracker-api/internal/repository"
)

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrInvalidPriority    = errors.New("priority must be one of LOW, MEDIUM, HIGH, URGENT")
	ErrUserNotFound       = errors.New("referenced user does not exist")
	ErrCategoryNotFound   = errors.New("referenced category does not exist")
	ErrTagNotFound        = errors.New("one or more referenced tags do not exist")
	ErrDependencyNotFound = errors.New("one or more referenced dependencies do not exist")
	ErrSelfDependency     = errors.New("a todo cannot depend on itself")
	ErrCircularDependency = errors.New("circular dependency detected")
)

// TodoService orchestrates repository reads, dependency validation and
// statistics assembly for each endpoint.
type TodoService struct {
	todoRepo  repository.TodoRepository
	statsRepo repository.StatsRepository
	validator *DependencyValidator
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository, statsRepo repository.StatsRepository) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		statsRepo: statsRepo,
		validator: NewDependencyValidator(todoRepo),
	}
}

// ListTodosInput represents filters for listing todos
type ListTodosInput struct {
	Completed  *bool
	Search     string
	Priority   *models.Priority
	CategoryID *uint64
	UserID     *uint64
	TagID      *uint64
	Page       int
	PageSize   int
}

// ListStats holds the global statistics attached to every list response
type ListStats struct {
	Total      int64
	Completed  int64
	ByPriority []repository.PriorityCount
	ByCategory []repository.CategoryCount
}

// ListTodosResult bundles the page with its pagination count and the global
// statistics block
type ListTodosResult struct {
	Todos           []models.Todo
	FilteredTotal   int64
	Stats           ListStats
	RecentlyUpdated []repository.RecentTodo
	MostUsedTags    []repository.TagCount
}

// ListTodos returns a filtered page of todos plus global statistics
func (s *TodoService) ListTodos(input ListTodosInput) (*ListTodosResult, error) {
	filter := repository.TodoFilter{
		Completed:  input.Completed,
		Search:     input.Search,
		Priority:   input.Priority,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
		TagID:      input.TagID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	todos, filteredTotal, err := s.todoRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	system, err := s.statsRepo.SystemCompletion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}

	byPriority, err := s.statsRepo.AggregateByPriority()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by priority: %w", err)
	}

	byCategory, err := s.statsRepo.AggregateByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	recent, err := s.statsRepo.RecentlyUpdated(constants.RecentWindowDays, constants.RecentUpdatedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recently updated todos: %w", err)
	}

	topTags, err := s.statsRepo.MostUsedTags(constants.TopTagsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most used tags: %w", err)
	}

	return &ListTodosResult{
		Todos:         todos,
		FilteredTotal: filteredTotal,
		Stats: ListStats{
			Total:      system.Total,
			Completed:  system.Completed,
			ByPriority: byPriority,
			ByCategory: byCategory,
		},
		RecentlyUpdated: recent,
		MostUsedTags:    topTags,
	}, nil
}

// RelatedTodos holds the three related lists attached to a detail response
type RelatedTodos struct {
	Similar []repository.TodoRef
	UserOwn []repository.TodoRef
	ByTags  []repository.TodoRef
}

// TodoDetailStats holds per-todo counts for the detail response
type TodoDetailStats struct {
	Notes        int
	Attachments  int
	Tags         int
	Dependencies int
	Dependents   int
	History      int
	AgeInDays    int
}

// GetTodoResult bundles a todo with its related lists, counts and the most
// recent history rows
type GetTodoResult struct {
	Todo          *models.Todo
	Related       RelatedTodos
	Stats         TodoDetailStats
	RecentChanges []models.TodoHistory
}

// GetTodo returns a todo with all relations, related todo lists and counts
func (s *TodoService) GetTodo(id uint64) (*GetTodoResult, error) {
	todo, err := s.todoRepo.FindFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	related := RelatedTodos{
		Similar: []repository.TodoRef{},
		UserOwn: []repository.TodoRef{},
		ByTags:  []repository.TodoRef{},
	}

	if todo.CategoryID != nil {
		related.Similar, err = s.todoRepo.SimilarTodos(*todo.CategoryID, todo.ID, constants.RelatedTodosLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list similar todos: %w", err)
		}
	}
	if todo.UserID != nil {
		related.UserOwn, err = s.todoRepo.UserTodos(*todo.UserID, todo.ID, constants.RelatedTodosLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list user todos: %w", err)
		}
	}
	if len(todo.Tags) > 0 {
		related.ByTags, err = s.todoRepo.RelatedByTags(todo.ID, constants.RelatedTodosLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list tag-related todos: %w", err)
		}
	}

	recent := todo.History
	if len(recent) > constants.HistoryPreviewLimit {
		recent = recent[:constants.HistoryPreviewLimit]
	}

	return &GetTodoResult{
		Todo:    todo,
		Related: related,
		Stats: TodoDetailStats{
			Notes:        len(todo.Notes),
			Attachments:  len(todo.Attachments),
			Tags:         len(todo.Tags),
			Dependencies: len(todo.Dependencies),
			Dependents:   len(todo.Dependents),
			History:      len(todo.History),
			AgeInDays:    ageInDays(todo.CreatedAt),
		},
		RecentChanges: recent,
	}, nil
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title         string
	Description   string
	Priority      models.Priority
	CategoryID    *uint64
	UserID        *uint64
	TagIDs        []uint64
	Notes         []string
	DependencyIDs []uint64
}

// CreateTodoResult bundles the created todo with creation-scope counts.
// User/category counts are nil when the todo has no user/category.
type CreateTodoResult struct {
	Todo              *models.Todo
	UserTodoCount     *int64
	CategoryTodoCount *int64
	TotalTodoCount    int64
}

// CreateTodo validates all referenced ids, then inserts the todo, its nested
// rows and the CREATED history row in one transaction
func (s *TodoService) CreateTodo(input CreateTodoInput) (*CreateTodoResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	tagIDs := uniqueIDs(input.TagIDs)
	depIDs := uniqueIDs(input.DependencyIDs)

	if err := s.checkReferences(input.UserID, input.CategoryID, tagIDs, depIDs); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		CategoryID:  input.CategoryID,
		UserID:      input.UserID,
	}

	history := &models.TodoHistory{
		Action:      models.HistoryCreated,
		Description: "Todo created",
	}

	if err := s.todoRepo.CreateWithRelations(todo, tagIDs, input.Notes, depIDs, history); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	full, err := s.todoRepo.FindFull(todo.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}

	result := &CreateTodoResult{Todo: full}

	system, err := s.statsRepo.SystemCompletion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}
	result.TotalTodoCount = system.Total

	if input.UserID != nil {
		userStats, err := s.statsRepo.UserCompletion(*input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute user stats: %w", err)
		}
		result.UserTodoCount = &userStats.Total
	}
	if input.CategoryID != nil {
		catStats, err := s.statsRepo.CategoryCompletion(*input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute category stats: %w", err)
		}
		result.CategoryTodoCount = &catStats.Total
	}

	return result, nil
}

// UpdateTodoInput represents a partial update: nil pointer fields are left
// untouched, Clear* flags null out the corresponding reference.
type UpdateTodoInput struct {
	Title         *string
	Description   *string
	Priority      *models.Priority
	Completed     *bool
	UserID        *uint64
	ClearUser     bool
	CategoryID    *uint64
	ClearCategory bool

	AddTagIDs           []uint64
	RemoveTagIDs        []uint64
	AddNotes            []string
	RemoveNoteIDs       []uint64
	AddDependencyIDs    []uint64
	RemoveDependencyIDs []uint64
}

// UpdateTodoResult bundles the updated todo with the list of fields the
// request touched
type UpdateTodoResult struct {
	Todo          *models.Todo
	ChangedFields []string
}

// UpdateTodo applies a partial update plus relation set changes and appends
// an UPDATED history row naming the touched fields
func (s *TodoService) UpdateTodo(id uint64, input UpdateTodoInput) (*UpdateTodoResult, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	var changed []string

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		todo.Title = *input.Title
		changed = append(changed, "title")
	}
	if input.Description != nil {
		todo.Description = *input.Description
		changed = append(changed, "description")
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		todo.Priority = *input.Priority
		changed = append(changed, "priority")
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
		changed = append(changed, "completed")
	}
	if input.ClearUser {
		todo.UserID = nil
		changed = append(changed, "userId")
	} else if input.UserID != nil {
		todo.UserID = input.UserID
		changed = append(changed, "userId")
	}
	if input.ClearCategory {
		todo.CategoryID = nil
		changed = append(changed, "categoryId")
	} else if input.CategoryID != nil {
		todo.CategoryID = input.CategoryID
		changed = append(changed, "categoryId")
	}

	addTags := uniqueIDs(input.AddTagIDs)
	addDeps := uniqueIDs(input.AddDependencyIDs)

	var refUserID, refCategoryID *uint64
	if !input.ClearUser {
		refUserID = input.UserID
	}
	if !input.ClearCategory {
		refCategoryID = input.CategoryID
	}
	if err := s.checkReferences(refUserID, refCategoryID, addTags, addDeps); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(id, addDeps); err != nil {
		return nil, err
	}

	if len(addTags) > 0 || len(input.RemoveTagIDs) > 0 {
		changed = append(changed, "tags")
	}
	if len(input.AddNotes) > 0 || len(input.RemoveNoteIDs) > 0 {
		changed = append(changed, "notes")
	}
	if len(addDeps) > 0 || len(input.RemoveDependencyIDs) > 0 {
		changed = append(changed, "dependencies")
	}

	if len(changed) == 0 {
		full, err := s.todoRepo.FindFull(id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload todo: %w", err)
		}
		return &UpdateTodoResult{Todo: full, ChangedFields: []string{}}, nil
	}

	changes := repository.RelationChanges{
		AddTagIDs:           addTags,
		RemoveTagIDs:        uniqueIDs(input.RemoveTagIDs),
		AddNotes:            input.AddNotes,
		RemoveNoteIDs:       uniqueIDs(input.RemoveNoteIDs),
		AddDependencyIDs:    addDeps,
		RemoveDependencyIDs: uniqueIDs(input.RemoveDependencyIDs),
	}

	history := &models.TodoHistory{
		Action:      models.HistoryUpdated,
		Description: "Updated fields: " + strings.Join(changed, ", "),
	}

	if err := s.todoRepo.UpdateWithRelations(todo, changes, history); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	full, err := s.todoRepo.FindFull(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}

	return &UpdateTodoResult{Todo: full, ChangedFields: changed}, nil
}

// DeleteTodoResult describes what a delete removed and its system-wide
// impact. Before/after stats come from separate pre/post reads.
type DeleteTodoResult struct {
	ID             uint64
	Relations      repository.RelationCounts
	Before         ScopeStats
	After          ScopeStats
	AgeInDays      int
	CompletionTime *float64
	DependentTodos []repository.TodoRef
}

// DeleteTodo removes a todo with all of its owned rows and reports the todos
// that depended on it
func (s *TodoService) DeleteTodo(id uint64) (*DeleteTodoResult, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	relations, err := s.todoRepo.RelationCounts(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count relations: %w", err)
	}

	dependents, err := s.todoRepo.DependentRefs(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependents: %w", err)
	}

	before, err := s.statsRepo.SystemCompletion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}

	if err := s.todoRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	after, err := s.statsRepo.SystemCompletion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}

	result := &DeleteTodoResult{
		ID:             id,
		Relations:      relations,
		Before:         toScopeStats(before),
		After:          toScopeStats(after),
		AgeInDays:      ageInDays(todo.CreatedAt),
		DependentTodos: dependents,
	}

	if todo.Completed {
		hours := todo.UpdatedAt.Sub(todo.CreatedAt).Hours()
		result.CompletionTime = &hours
	}

	return result, nil
}

// DependencyStatus reports the completion state of a todo's dependencies at
// toggle time. Incomplete dependencies never block the toggle.
type DependencyStatus struct {
	Total                  int
	Completed              int
	Incomplete             int
	IncompleteDependencies []repository.TodoRef
}

// ScopeStats is a completion summary for one scope with a percentage rate
type ScopeStats struct {
	Total          int64
	Completed      int64
	CompletionRate float64
}

// ToggleTodoResult bundles the toggled todo with dependency status and
// per-scope statistics
type ToggleTodoResult struct {
	Todo             *models.Todo
	Action           models.HistoryAction
	AgeInDays        int
	DependencyStatus DependencyStatus
	UserStats        *ScopeStats
	CategoryStats    *ScopeStats
	SystemStats      ScopeStats
}

// ToggleTodo flips the completed flag unconditionally and appends a
// COMPLETED or REOPENED history row in the same transaction
func (s *TodoService) ToggleTodo(id uint64) (*ToggleTodoResult, error) {
	todo, err := s.todoRepo.FindByID(id, "Dependencies", "Dependencies.DependsOn")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	depStatus := DependencyStatus{
		Total:                  len(todo.Dependencies),
		IncompleteDependencies: []repository.TodoRef{},
	}
	for _, edge := range todo.Dependencies {
		if edge.DependsOn.Completed {
			depStatus.Completed++
		} else {
			depStatus.IncompleteDependencies = append(depStatus.IncompleteDependencies, repository.TodoRef{
				ID:        edge.DependsOn.ID,
				Title:     edge.DependsOn.Title,
				Completed: false,
			})
		}
	}
	depStatus.Incomplete = depStatus.Total - depStatus.Completed

	todo.Completed = !todo.Completed

	action := models.HistoryReopened
	description := "Todo reopened"
	if todo.Completed {
		action = models.HistoryCompleted
		description = "Todo marked as completed"
	}

	history := &models.TodoHistory{
		Action:      action,
		Description: description,
	}

	if err := s.todoRepo.UpdateWithHistory(todo, history); err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	full, err := s.todoRepo.FindFull(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}

	result := &ToggleTodoResult{
		Todo:             full,
		Action:           action,
		AgeInDays:        ageInDays(full.CreatedAt),
		DependencyStatus: depStatus,
	}

	system, err := s.statsRepo.SystemCompletion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}
	result.SystemStats = toScopeStats(system)

	if full.UserID != nil {
		userStats, err := s.statsRepo.UserCompletion(*full.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute user stats: %w", err)
		}
		scoped := toScopeStats(userStats)
		result.UserStats = &scoped
	}
	if full.CategoryID != nil {
		catStats, err := s.statsRepo.CategoryCompletion(*full.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute category stats: %w", err)
		}
		scoped := toScopeStats(catStats)
		result.CategoryStats = &scoped
	}

	return result, nil
}

// checkReferences verifies that every referenced id points at an existing
// row, surfacing a distinct error per kind before any write happens.
func (s *TodoService) checkReferences(userID, categoryID *uint64, tagIDs, dependencyIDs []uint64) error {
	if userID != nil {
		exists, err := s.todoRepo.UserExists(*userID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}
	}

	if categoryID != nil {
		exists, err := s.todoRepo.CategoryExists(*categoryID)
		if err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return ErrCategoryNotFound
		}
	}

	if len(tagIDs) > 0 {
		count, err := s.todoRepo.CountTagsByIDs(tagIDs)
		if err != nil {
			return fmt.Errorf("failed to check tags: %w", err)
		}
		if int(count) != len(tagIDs) {
			return ErrTagNotFound
		}
	}

	if len(dependencyIDs) > 0 {
		count, err := s.todoRepo.CountTodosByIDs(dependencyIDs)
		if err != nil {
			return fmt.Errorf("failed to check dependencies: %w", err)
		}
		if int(count) != len(dependencyIDs) {
			return ErrDependencyNotFound
		}
	}

	return nil
}

func toScopeStats(stats repository.CompletionStats) ScopeStats {
	return ScopeStats{
		Total:          stats.Total,
		Completed:      stats.Completed,
		CompletionRate: completionRate(stats),
	}
}

// completionRate returns completed/total as a percentage rounded to two
// decimals; zero when the scope is empty.
func completionRate(stats repository.CompletionStats) float64 {
	if stats.Total == 0 {
		return 0
	}
	return math.Round(float64(stats.Completed)/float64(stats.Total)*10000) / 100
}

func ageInDays(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}

func uniqueIDs(ids []uint64) []uint64 {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
