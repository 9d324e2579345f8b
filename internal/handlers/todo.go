package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"todo-tracker-api/internal/dto"
	apierr "todo-tracker-api/internal/errors"
	"todo-tracker-api/internal/models"
	"todo-tracker-api/internal/services"
	"todo-tracker-api/internal/utils"
)

type TodoHandler struct {
	service *services.TodoService
}

func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// ListTodos returns a filtered, paginated page of todos plus global stats
func (h *TodoHandler) ListTodos(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTodosInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			apierr.BadRequest(c, "Invalid completed value")
			return
		}
		input.Completed = &completed
	}

	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := models.Priority(strings.ToUpper(priorityStr))
		if !priority.IsValid() {
			apierr.BadRequest(c, "Invalid priority")
			return
		}
		input.Priority = &priority
	}

	for query, target := range map[string]**uint64{
		"category": &input.CategoryID,
		"user":     &input.UserID,
		"tag":      &input.TagID,
	} {
		if str := c.Query(query); str != "" {
			id, err := strconv.ParseUint(str, 10, 64)
			if err != nil {
				apierr.BadRequest(c, "Invalid "+query+" id")
				return
			}
			*target = &id
		}
	}

	result, err := h.service.ListTodos(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTodosResponse(result, params.Page, params.Limit))
}

// GetTodo returns a single todo with relations, related todos and stats
func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	result, err := h.service.GetTodo(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGetTodoResponse(result))
}

// CreateTodo creates a todo with optional nested tags, notes and dependencies
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	type createTodoRequest struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Priority     string   `json:"priority"`
		CategoryID   *uint64  `json:"categoryId"`
		UserID       *uint64  `json:"userId"`
		TagIDs       []uint64 `json:"tagIds"`
		Notes        []string `json:"notes"`
		Dependencies []uint64 `json:"dependencies"`
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.CreateTodo(services.CreateTodoInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      models.Priority(strings.ToUpper(req.Priority)),
		CategoryID:    req.CategoryID,
		UserID:        req.UserID,
		TagIDs:        req.TagIDs,
		Notes:         req.Notes,
		DependencyIDs: req.Dependencies,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreateTodoResponse(result))
}

// UpdateTodo applies a partial update. The body is parsed as a raw map so an
// absent field and an explicit null can be told apart.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierr.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTodoInput{}

	if v, present := raw["title"]; present {
		s, ok := v.(string)
		if !ok {
			apierr.BadRequest(c, "Invalid title value")
			return
		}
		input.Title = &s
	}
	if v, present := raw["description"]; present {
		s, ok := v.(string)
		if !ok {
			apierr.BadRequest(c, "Invalid description value")
			return
		}
		input.Description = &s
	}
	if v, present := raw["priority"]; present {
		s, ok := v.(string)
		if !ok {
			apierr.BadRequest(c, "Invalid priority value")
			return
		}
		priority := models.Priority(strings.ToUpper(s))
		input.Priority = &priority
	}
	if v, present := raw["completed"]; present {
		b, ok := v.(bool)
		if !ok {
			apierr.BadRequest(c, "Invalid completed value")
			return
		}
		input.Completed = &b
	}
	if v, present := raw["userId"]; present {
		if v == nil {
			input.ClearUser = true
		} else {
			id, ok := idFromAny(v)
			if !ok {
				apierr.BadRequest(c, "Invalid userId value")
				return
			}
			input.UserID = &id
		}
	}
	if v, present := raw["categoryId"]; present {
		if v == nil {
			input.ClearCategory = true
		} else {
			id, ok := idFromAny(v)
			if !ok {
				apierr.BadRequest(c, "Invalid categoryId value")
				return
			}
			input.CategoryID = &id
		}
	}

	for key, target := range map[string]*[]uint64{
		"tagIds":             &input.AddTagIDs,
		"removeTags":         &input.RemoveTagIDs,
		"removeNotes":        &input.RemoveNoteIDs,
		"dependencies":       &input.AddDependencyIDs,
		"removeDependencies": &input.RemoveDependencyIDs,
	} {
		if v, present := raw[key]; present {
			ids, ok := idListFromAny(v)
			if !ok {
				apierr.BadRequest(c, "Invalid "+key+" value")
				return
			}
			*target = ids
		}
	}

	if v, present := raw["notes"]; present {
		notes, ok := stringListFromAny(v)
		if !ok {
			apierr.BadRequest(c, "Invalid notes value")
			return
		}
		input.AddNotes = notes
	}

	result, err := h.service.UpdateTodo(id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUpdateTodoResponse(result))
}

// DeleteTodo removes a todo with all owned rows and reports the impact
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	result, err := h.service.DeleteTodo(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDeleteTodoResponse(result))
}

// ToggleTodo flips the completed flag and reports dependency status
func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	result, err := h.service.ToggleTodo(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToToggleTodoResponse(result))
}

func (h *TodoHandler) todoID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierr.BadRequest(c, "Invalid todo id")
		return 0, false
	}
	return id, true
}

func (h *TodoHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierr.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrDependencyNotFound),
		errors.Is(err, services.ErrSelfDependency),
		errors.Is(err, services.ErrCircularDependency):
		apierr.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).Msg("todo handler failure")
		apierr.InternalError(c, "")
	}
}

// JSON numbers arrive as float64; ids must be whole and non-negative.
func idFromAny(v any) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint64(f), true
}

func idListFromAny(v any) ([]uint64, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]uint64, 0, len(arr))
	for _, item := range arr {
		id, ok := idFromAny(item)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func stringListFromAny(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	values := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		values = append(values, s)
	}
	return values, true
}
