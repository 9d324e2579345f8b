package dto

import (
	"time"

	"todo-tracker-api/internal/constants"
	"todo-tracker-api/internal/models"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/services"
	"todo-tracker-api/internal/utils"
)

// UserDTO represents a referenced user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryDTO represents a referenced category in API responses
type CategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TagDTO is a tag flattened out of its join row, keeping the assignment time
type TagDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	AssignedAt time.Time `json:"assignedAt"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryDTO represents an audit row in API responses
type HistoryDTO struct {
	ID          uint64               `json:"id"`
	Action      models.HistoryAction `json:"action"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// AttachmentDTO represents an attachment in API responses
type AttachmentDTO struct {
	ID        uint64    `json:"id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"filepath"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodoPairDTO is an id+title pair used for dependency and dependent lists
type TodoPairDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// TodoDTO represents a todo with all of its relations in API responses
type TodoDTO struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Completed    bool            `json:"completed"`
	Priority     models.Priority `json:"priority"`
	UserID       *uint64         `json:"userId"`
	CategoryID   *uint64         `json:"categoryId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	User         *UserDTO        `json:"user,omitempty"`
	Category     *CategoryDTO    `json:"category,omitempty"`
	Tags         []TagDTO        `json:"tags"`
	Notes        []NoteDTO       `json:"notes"`
	Dependencies []TodoPairDTO   `json:"dependencies"`
	Dependents   []TodoPairDTO   `json:"dependents"`
	History      []HistoryDTO    `json:"history"`
	Attachments  []AttachmentDTO `json:"attachments"`
}

// ToTodoDTO converts a Todo model with preloaded relations to a TodoDTO,
// flattening the tag join table and capping history at the preview limit.
func ToTodoDTO(todo models.Todo) TodoDTO {
	dto := TodoDTO{
		ID:           todo.ID,
		Title:        todo.Title,
		Description:  todo.Description,
		Completed:    todo.Completed,
		Priority:     todo.Priority,
		UserID:       todo.UserID,
		CategoryID:   todo.CategoryID,
		CreatedAt:    todo.CreatedAt,
		UpdatedAt:    todo.UpdatedAt,
		Tags:         make([]TagDTO, 0, len(todo.Tags)),
		Notes:        make([]NoteDTO, 0, len(todo.Notes)),
		Dependencies: make([]TodoPairDTO, 0, len(todo.Dependencies)),
		Dependents:   make([]TodoPairDTO, 0, len(todo.Dependents)),
		History:      []HistoryDTO{},
		Attachments:  make([]AttachmentDTO, 0, len(todo.Attachments)),
	}

	if todo.User != nil {
		dto.User = &UserDTO{ID: todo.User.ID, Name: todo.User.Name, Email: todo.User.Email}
	}
	if todo.Category != nil {
		dto.Category = &CategoryDTO{ID: todo.Category.ID, Name: todo.Category.Name, Description: todo.Category.Description}
	}

	for _, join := range todo.Tags {
		dto.Tags = append(dto.Tags, TagDTO{
			ID:         join.Tag.ID,
			Name:       join.Tag.Name,
			AssignedAt: join.AssignedAt,
		})
	}

	for _, note := range todo.Notes {
		dto.Notes = append(dto.Notes, NoteDTO{
			ID:        note.ID,
			Content:   note.Content,
			CreatedAt: note.CreatedAt,
		})
	}

	for _, edge := range todo.Dependencies {
		dto.Dependencies = append(dto.Dependencies, TodoPairDTO{
			ID:    edge.DependsOn.ID,
			Title: edge.DependsOn.Title,
		})
	}
	for _, edge := range todo.Dependents {
		dto.Dependents = append(dto.Dependents, TodoPairDTO{
			ID:    edge.Todo.ID,
			Title: edge.Todo.Title,
		})
	}

	history := todo.History
	if len(history) > constants.HistoryPreviewLimit {
		history = history[:constants.HistoryPreviewLimit]
	}
	for _, row := range history {
		dto.History = append(dto.History, toHistoryDTO(row))
	}

	for _, attachment := range todo.Attachments {
		dto.Attachments = append(dto.Attachments, AttachmentDTO{
			ID:        attachment.ID,
			Filename:  attachment.Filename,
			Filepath:  attachment.Filepath,
			MimeType:  attachment.MimeType,
			CreatedAt: attachment.CreatedAt,
		})
	}

	return dto
}

func toHistoryDTO(row models.TodoHistory) HistoryDTO {
	return HistoryDTO{
		ID:          row.ID,
		Action:      row.Action,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

// PaginationDTO is the pagination metadata block of list responses
type PaginationDTO struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// ListStatsDTO is the global statistics block of list responses
type ListStatsDTO struct {
	Total      int64                      `json:"total"`
	Completed  int64                      `json:"completed"`
	ByPriority []repository.PriorityCount `json:"byPriority"`
	ByCategory []repository.CategoryCount `json:"byCategory"`
}

// ListTodosResponse is the full list endpoint response
type ListTodosResponse struct {
	Data            []TodoDTO               `json:"data"`
	Pagination      PaginationDTO           `json:"pagination"`
	Stats           ListStatsDTO            `json:"stats"`
	RecentlyUpdated []repository.RecentTodo `json:"recentlyUpdated"`
	MostUsedTags    []repository.TagCount   `json:"mostUsedTags"`
}

// ToListTodosResponse assembles the list endpoint response
func ToListTodosResponse(result *services.ListTodosResult, page, limit int) ListTodosResponse {
	data := make([]TodoDTO, 0, len(result.Todos))
	for _, todo := range result.Todos {
		data = append(data, ToTodoDTO(todo))
	}

	return ListTodosResponse{
		Data: data,
		Pagination: PaginationDTO{
			Total:       result.FilteredTotal,
			TotalPages:  utils.TotalPages(result.FilteredTotal, limit),
			CurrentPage: page,
			Limit:       limit,
		},
		Stats: ListStatsDTO{
			Total:      result.Stats.Total,
			Completed:  result.Stats.Completed,
			ByPriority: result.Stats.ByPriority,
			ByCategory: result.Stats.ByCategory,
		},
		RecentlyUpdated: result.RecentlyUpdated,
		MostUsedTags:    result.MostUsedTags,
	}
}

// RelatedDTO is the related-todos block of the detail response
type RelatedDTO struct {
	SimilarTodos  []repository.TodoRef `json:"similarTodos"`
	UserTodos     []repository.TodoRef `json:"userTodos"`
	RelatedByTags []TodoPairDTO        `json:"relatedByTags"`
}

// DetailStatsDTO is the counts block of the detail response
type DetailStatsDTO struct {
	Notes          int `json:"notes"`
	Attachments    int `json:"attachments"`
	Tags           int `json:"tags"`
	Dependencies   int `json:"dependencies"`
	Dependents     int `json:"dependents"`
	HistoryEntries int `json:"historyEntries"`
	AgeInDays      int `json:"ageInDays"`
}

// GetTodoResponse is the full detail endpoint response
type GetTodoResponse struct {
	Todo          TodoDTO        `json:"todo"`
	Related       RelatedDTO     `json:"related"`
	Stats         DetailStatsDTO `json:"stats"`
	RecentChanges []HistoryDTO   `json:"recentChanges"`
}

// ToGetTodoResponse assembles the detail endpoint response
func ToGetTodoResponse(result *services.GetTodoResult) GetTodoResponse {
	related := RelatedDTO{
		SimilarTodos:  result.Related.Similar,
		UserTodos:     result.Related.UserOwn,
		RelatedByTags: make([]TodoPairDTO, 0, len(result.Related.ByTags)),
	}
	for _, ref := range result.Related.ByTags {
		related.RelatedByTags = append(related.RelatedByTags, TodoPairDTO{ID: ref.ID, Title: ref.Title})
	}

	changes := make([]HistoryDTO, 0, len(result.RecentChanges))
	for _, row := range result.RecentChanges {
		changes = append(changes, toHistoryDTO(row))
	}

	return GetTodoResponse{
		Todo:    ToTodoDTO(*result.Todo),
		Related: related,
		Stats: DetailStatsDTO{
			Notes:          result.Stats.Notes,
			Attachments:    result.Stats.Attachments,
			Tags:           result.Stats.Tags,
			Dependencies:   result.Stats.Dependencies,
			Dependents:     result.Stats.Dependents,
			HistoryEntries: result.Stats.History,
			AgeInDays:      result.Stats.AgeInDays,
		},
		RecentChanges: changes,
	}
}

// CreateStatsDTO is the counts block of the create response
type CreateStatsDTO struct {
	UserTodoCount     *int64 `json:"userTodoCount"`
	CategoryTodoCount *int64 `json:"categoryTodoCount"`
	TotalTodoCount    int64  `json:"totalTodoCount"`
}

// CreateTodoResponse is the create endpoint response
type CreateTodoResponse struct {
	Todo  TodoDTO        `json:"todo"`
	Stats CreateStatsDTO `json:"stats"`
}

// ToCreateTodoResponse assembles the create endpoint response
func ToCreateTodoResponse(result *services.CreateTodoResult) CreateTodoResponse {
	return CreateTodoResponse{
		Todo: ToTodoDTO(*result.Todo),
		Stats: CreateStatsDTO{
			UserTodoCount:     result.UserTodoCount,
			CategoryTodoCount: result.CategoryTodoCount,
			TotalTodoCount:    result.TotalTodoCount,
		},
	}
}

// UpdateTodoResponse is the update endpoint response
type UpdateTodoResponse struct {
	Todo          TodoDTO  `json:"todo"`
	ChangedFields []string `json:"changedFields"`
}

// ToUpdateTodoResponse assembles the update endpoint response
func ToUpdateTodoResponse(result *services.UpdateTodoResult) UpdateTodoResponse {
	return UpdateTodoResponse{
		Todo:          ToTodoDTO(*result.Todo),
		ChangedFields: result.ChangedFields,
	}
}

// ScopeStatsDTO is a completion summary with percentage rate
type ScopeStatsDTO struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

func toScopeStatsDTO(stats services.ScopeStats) ScopeStatsDTO {
	return ScopeStatsDTO{
		Total:          stats.Total,
		Completed:      stats.Completed,
		CompletionRate: stats.CompletionRate,
	}
}

// RelationCountsDTO is the per-relation counts block of the delete response
type RelationCountsDTO struct {
	Notes          int64 `json:"notes"`
	Attachments    int64 `json:"attachments"`
	HistoryEntries int64 `json:"historyEntries"`
	Tags           int64 `json:"tags"`
	Dependencies   int64 `json:"dependencies"`
	Dependents     int64 `json:"dependents"`
}

// DeleteImpactDTO reports system-wide totals around the delete
type DeleteImpactDTO struct {
	TotalTodosBefore     int64   `json:"totalTodosBefore"`
	TotalTodosAfter      int64   `json:"totalTodosAfter"`
	CompletionRateBefore float64 `json:"completionRateBefore"`
	CompletionRateAfter  float64 `json:"completionRateAfter"`
}

// DeletedTodoStatsDTO reports lifetime figures of the removed todo.
// CompletionTime is in hours and null when the todo was never completed.
type DeletedTodoStatsDTO struct {
	AgeInDays      int      `json:"ageInDays"`
	CompletionTime *float64 `json:"completionTime"`
}

// DeleteStatsDTO is the stats block of the delete response
type DeleteStatsDTO struct {
	Relations RelationCountsDTO   `json:"relations"`
	Impact    DeleteImpactDTO     `json:"impact"`
	Todo      DeletedTodoStatsDTO `json:"todo"`
}

// DeleteTodoResponse is the delete endpoint response
type DeleteTodoResponse struct {
	ID             uint64         `json:"id"`
	Deleted        bool           `json:"deleted"`
	Stats          DeleteStatsDTO `json:"stats"`
	DependentTodos []TodoPairDTO  `json:"dependentTodos"`
}

// ToDeleteTodoResponse assembles the delete endpoint response
func ToDeleteTodoResponse(result *services.DeleteTodoResult) DeleteTodoResponse {
	dependents := make([]TodoPairDTO, 0, len(result.DependentTodos))
	for _, ref := range result.DependentTodos {
		dependents = append(dependents, TodoPairDTO{ID: ref.ID, Title: ref.Title})
	}

	return DeleteTodoResponse{
		ID:      result.ID,
		Deleted: true,
		Stats: DeleteStatsDTO{
			Relations: RelationCountsDTO{
				Notes:          result.Relations.Notes,
				Attachments:    result.Relations.Attachments,
				HistoryEntries: result.Relations.History,
				Tags:           result.Relations.Tags,
				Dependencies:   result.Relations.Dependencies,
				Dependents:     result.Relations.Dependents,
			},
			Impact: DeleteImpactDTO{
				TotalTodosBefore:     result.Before.Total,
				TotalTodosAfter:      result.After.Total,
				CompletionRateBefore: result.Before.CompletionRate,
				CompletionRateAfter:  result.After.CompletionRate,
			},
			Todo: DeletedTodoStatsDTO{
				AgeInDays:      result.AgeInDays,
				CompletionTime: result.CompletionTime,
			},
		},
		DependentTodos: dependents,
	}
}

// DependencyStatusDTO reports dependency completion at toggle time
type DependencyStatusDTO struct {
	Total                  int                  `json:"total"`
	Completed              int                  `json:"completed"`
	Incomplete             int                  `json:"incomplete"`
	IncompleteDependencies []repository.TodoRef `json:"incompleteDependencies"`
	Warning                string               `json:"warning,omitempty"`
}

// ToggleStatsDTO is the per-scope stats block of the toggle response.
// User and category are null when the todo has no user/category.
type ToggleStatsDTO struct {
	User     *ScopeStatsDTO     `json:"user"`
	Category *ScopeStatsDTO     `json:"category"`
	System   ScopeStatsDTO      `json:"system"`
	Todo     ToggleTodoStatsDTO `json:"todo"`
}

// ToggleTodoStatsDTO describes the toggled todo itself
type ToggleTodoStatsDTO struct {
	Action    models.HistoryAction `json:"action"`
	AgeInDays int                  `json:"ageInDays"`
}

// ToggleTodoResponse is the toggle endpoint response
type ToggleTodoResponse struct {
	Todo             TodoDTO             `json:"todo"`
	DependencyStatus DependencyStatusDTO `json:"dependencyStatus"`
	Stats            ToggleStatsDTO      `json:"stats"`
}

// ToToggleTodoResponse assembles the toggle endpoint response
func ToToggleTodoResponse(result *services.ToggleTodoResult) ToggleTodoResponse {
	depStatus := DependencyStatusDTO{
		Total:                  result.DependencyStatus.Total,
		Completed:              result.DependencyStatus.Completed,
		Incomplete:             result.DependencyStatus.Incomplete,
		IncompleteDependencies: result.DependencyStatus.IncompleteDependencies,
	}
	if result.Todo.Completed && depStatus.Incomplete > 0 {
		depStatus.Warning = "completed with incomplete dependencies"
	}

	stats := ToggleStatsDTO{
		System: toScopeStatsDTO(result.SystemStats),
		Todo: ToggleTodoStatsDTO{
			Action:    result.Action,
			AgeInDays: result.AgeInDays,
		},
	}
	if result.UserStats != nil {
		scoped := toScopeStatsDTO(*result.UserStats)
		stats.User = &scoped
	}
	if result.CategoryStats != nil {
		scoped := toScopeStatsDTO(*result.CategoryStats)
		stats.Category = &scoped
	}

	return ToggleTodoResponse{
		Todo:             ToTodoDTO(*result.Todo),
		DependencyStatus: depStatus,
		Stats:            stats,
	}
}
