package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"todo-tracker-api/internal/handlers"
	"todo-tracker-api/internal/models"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/services"
	"todo-tracker-api/internal/testutil"
)

// RoutesTestSuite exercises the full HTTP surface against an in-memory
// database
type RoutesTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *RoutesTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())

	todoRepo := repository.NewTodoRepository(suite.db)
	statsRepo := repository.NewStatsRepository(suite.db)
	service := services.NewTodoService(todoRepo, statsRepo)
	handler := handlers.NewTodoHandler(service)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	Setup(suite.router, handler)
}

// TearDownTest runs after each test
func (suite *RoutesTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Request helpers

func (suite *RoutesTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RoutesTestSuite) parse(w *httptest.ResponseRecorder) map[string]any {
	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	return response
}

// Seed helpers

func (suite *RoutesTestSuite) createTestUser(email string) *models.User {
	user := &models.User{Name: "Test User", Email: email}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *RoutesTestSuite) createTestCategory(name string) *models.Category {
	category := &models.Category{Name: name}
	suite.Require().NoError(suite.db.Create(category).Error)
	return category
}

func (suite *RoutesTestSuite) createTestTag(name string) *models.Tag {
	tag := &models.Tag{Name: name}
	suite.Require().NoError(suite.db.Create(tag).Error)
	return tag
}

func (suite *RoutesTestSuite) createTodoViaAPI(body map[string]any) uint64 {
	w := suite.request("POST", "/api/todos", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := suite.parse(w)
	todo := response["todo"].(map[string]any)
	return uint64(todo["id"].(float64))
}

// Health / routing

func (suite *RoutesTestSuite) TestHealth() {
	w := suite.request("GET", "/health", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.parse(w)
	assert.Equal(suite.T(), "ok", response["status"])
	assert.NotEmpty(suite.T(), response["timestamp"])
}

func (suite *RoutesTestSuite) TestUnmatchedRoute() {
	w := suite.request("GET", "/api/nothing-here", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	response := suite.parse(w)
	assert.Equal(suite.T(), "Route not found", response["error"])
}

// Create

func (suite *RoutesTestSuite) TestCreateTodo_Defaults() {
	w := suite.request("POST", "/api/todos", map[string]any{"title": "A"})

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	response := suite.parse(w)

	todo := response["todo"].(map[string]any)
	assert.Equal(suite.T(), "A", todo["title"])
	assert.Equal(suite.T(), false, todo["completed"])
	assert.Equal(suite.T(), "MEDIUM", todo["priority"])

	stats := response["stats"].(map[string]any)
	assert.Equal(suite.T(), float64(1), stats["totalTodoCount"])
	assert.Nil(suite.T(), stats["userTodoCount"])
	assert.Nil(suite.T(), stats["categoryTodoCount"])

	// CREATED history row written in the same transaction
	var history []models.TodoHistory
	suite.db.Find(&history)
	suite.Require().Len(history, 1)
	assert.Equal(suite.T(), models.HistoryCreated, history[0].Action)
}

func (suite *RoutesTestSuite) TestCreateTodo_LowercasePriority() {
	w := suite.request("POST", "/api/todos", map[string]any{
		"title":    "A",
		"priority": "high",
	})

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	response := suite.parse(w)
	assert.Equal(suite.T(), "HIGH", response["todo"].(map[string]any)["priority"])
}

func (suite *RoutesTestSuite) TestCreateTodo_MissingTitle() {
	w := suite.request("POST", "/api/todos", map[string]any{"description": "no title"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.parse(w)
	assert.Contains(suite.T(), response["error"], "title")
}

func (suite *RoutesTestSuite) TestCreateTodo_InvalidCategoryReference() {
	w := suite.request("POST", "/api/todos", map[string]any{
		"title":      "A",
		"categoryId": 999,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.parse(w)
	assert.Contains(suite.T(), response["error"], "category")

	var count int64
	suite.db.Model(&models.Todo{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "failed validation must not write")
}

func (suite *RoutesTestSuite) TestCreateTodo_UnknownDependency() {
	w := suite.request("POST", "/api/todos", map[string]any{
		"title":        "A",
		"dependencies": []uint64{42},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.parse(w)
	assert.Contains(suite.T(), response["error"], "dependencies")
}

func (suite *RoutesTestSuite) TestCreateTodo_WithNestedRelations() {
	user := suite.createTestUser("owner@example.com")
	category := suite.createTestCategory("Work")
	tag := suite.createTestTag("urgent-work")
	depID := suite.createTodoViaAPI(map[string]any{"title": "Dependency"})

	w := suite.request("POST", "/api/todos", map[string]any{
		"title":        "Main",
		"description":  "with everything",
		"priority":     "HIGH",
		"userId":       user.ID,
		"categoryId":   category.ID,
		"tagIds":       []uint64{tag.ID},
		"notes":        []string{"first note", "second note"},
		"dependencies": []uint64{depID},
	})

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	response := suite.parse(w)

	todo := response["todo"].(map[string]any)
	assert.Equal(suite.T(), "HIGH", todo["priority"])

	tags := todo["tags"].([]any)
	suite.Require().Len(tags, 1)
	assert.Equal(suite.T(), "urgent-work", tags[0].(map[string]any)["name"])

	assert.Len(suite.T(), todo["notes"].([]any), 2)

	deps := todo["dependencies"].([]any)
	suite.Require().Len(deps, 1)
	assert.Equal(suite.T(), "Dependency", deps[0].(map[string]any)["title"])

	stats := response["stats"].(map[string]any)
	assert.Equal(suite.T(), float64(1), stats["userTodoCount"])
	assert.Equal(suite.T(), float64(1), stats["categoryTodoCount"])
	assert.Equal(suite.T(), float64(2), stats["totalTodoCount"])
}

// Get

func (suite *RoutesTestSuite) TestGetTodo_NotFound() {
	w := suite.request("GET", "/api/todos/12345", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	response := suite.parse(w)
	assert.Equal(suite.T(), "Todo not found", response["error"])
}

func (suite *RoutesTestSuite) TestGetTodo_RelatedAndStats() {
	user := suite.createTestUser("owner@example.com")
	category := suite.createTestCategory("Work")
	tag := suite.createTestTag("shared")

	mainID := suite.createTodoViaAPI(map[string]any{
		"title":      "Main",
		"userId":     user.ID,
		"categoryId": category.ID,
		"tagIds":     []uint64{tag.ID},
		"notes":      []string{"a note"},
	})
	suite.createTodoViaAPI(map[string]any{
		"title":      "Sibling",
		"userId":     user.ID,
		"categoryId": category.ID,
		"tagIds":     []uint64{tag.ID},
	})

	w := suite.request("GET", fmt.Sprintf("/api/todos/%d", mainID), nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	related := response["related"].(map[string]any)
	assert.Len(suite.T(), related["similarTodos"].([]any), 1)
	assert.Len(suite.T(), related["userTodos"].([]any), 1)
	assert.Len(suite.T(), related["relatedByTags"].([]any), 1)

	stats := response["stats"].(map[string]any)
	assert.Equal(suite.T(), float64(1), stats["notes"])
	assert.Equal(suite.T(), float64(1), stats["tags"])
	assert.Equal(suite.T(), float64(1), stats["historyEntries"])

	changes := response["recentChanges"].([]any)
	suite.Require().Len(changes, 1)
	assert.Equal(suite.T(), "CREATED", changes[0].(map[string]any)["action"])
}

// List

func (suite *RoutesTestSuite) TestListTodos_CombinedFilter() {
	for i := 0; i < 3; i++ {
		suite.createTodoViaAPI(map[string]any{"title": fmt.Sprintf("high %d", i), "priority": "HIGH"})
	}
	suite.createTodoViaAPI(map[string]any{"title": "low", "priority": "LOW"})

	// Complete two of the HIGH todos
	var highIDs []uint64
	suite.db.Model(&models.Todo{}).Where("priority = ?", "HIGH").Order("id ASC").Pluck("id", &highIDs)
	suite.Require().Len(highIDs, 3)
	suite.db.Model(&models.Todo{}).Where("id IN ?", highIDs[:2]).Update("completed", true)

	w := suite.request("GET", "/api/todos?completed=true&priority=HIGH", nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	data := response["data"].([]any)
	suite.Require().Len(data, 2)
	for _, item := range data {
		todo := item.(map[string]any)
		assert.Equal(suite.T(), true, todo["completed"])
		assert.Equal(suite.T(), "HIGH", todo["priority"])
	}

	pagination := response["pagination"].(map[string]any)
	assert.Equal(suite.T(), float64(2), pagination["total"], "pagination.total is the filtered count")
	assert.Equal(suite.T(), float64(1), pagination["totalPages"])

	stats := response["stats"].(map[string]any)
	assert.Equal(suite.T(), float64(4), stats["total"], "stats.total is the global count")
	assert.Equal(suite.T(), float64(2), stats["completed"])
}

func (suite *RoutesTestSuite) TestListTodos_Search() {
	suite.createTodoViaAPI(map[string]any{"title": "Buy Groceries"})
	suite.createTodoViaAPI(map[string]any{"title": "Call plumber", "description": "about the GROCERY shelf"})
	suite.createTodoViaAPI(map[string]any{"title": "Unrelated"})

	w := suite.request("GET", "/api/todos?search=grocer", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	response := suite.parse(w)
	assert.Len(suite.T(), response["data"].([]any), 2)
}

func (suite *RoutesTestSuite) TestListTodos_TagFilterAndPagination() {
	tag := suite.createTestTag("filtered")
	for i := 0; i < 3; i++ {
		suite.createTodoViaAPI(map[string]any{
			"title":  fmt.Sprintf("tagged %d", i),
			"tagIds": []uint64{tag.ID},
		})
	}
	suite.createTodoViaAPI(map[string]any{"title": "untagged"})

	w := suite.request("GET", fmt.Sprintf("/api/todos?tag=%d&limit=2", tag.ID), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	response := suite.parse(w)
	assert.Len(suite.T(), response["data"].([]any), 2)

	pagination := response["pagination"].(map[string]any)
	assert.Equal(suite.T(), float64(3), pagination["total"])
	assert.Equal(suite.T(), float64(2), pagination["totalPages"])
}

func (suite *RoutesTestSuite) TestListTodos_StatsBlocks() {
	category := suite.createTestCategory("Work")
	empty := suite.createTestCategory("Empty")
	tag := suite.createTestTag("popular")

	suite.createTodoViaAPI(map[string]any{"title": "a", "categoryId": category.ID, "tagIds": []uint64{tag.ID}})
	suite.createTodoViaAPI(map[string]any{"title": "b", "categoryId": category.ID})

	w := suite.request("GET", "/api/todos", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	response := suite.parse(w)

	stats := response["stats"].(map[string]any)
	byCategory := stats["byCategory"].([]any)
	suite.Require().Len(byCategory, 2, "zero-count categories appear via left join")

	counts := map[string]float64{}
	for _, bucket := range byCategory {
		entry := bucket.(map[string]any)
		counts[entry["category"].(string)] = entry["count"].(float64)
	}
	assert.Equal(suite.T(), float64(2), counts["Work"])
	assert.Equal(suite.T(), float64(0), counts[empty.Name])

	recent := response["recentlyUpdated"].([]any)
	assert.Len(suite.T(), recent, 2)

	topTags := response["mostUsedTags"].([]any)
	suite.Require().NotEmpty(suite.T(), topTags)
	first := topTags[0].(map[string]any)
	assert.Equal(suite.T(), "popular", first["name"])
	assert.Equal(suite.T(), float64(1), first["count"])
}

// Update

func (suite *RoutesTestSuite) TestUpdateTodo_PartialFields() {
	id := suite.createTodoViaAPI(map[string]any{"title": "Original", "description": "keep me"})

	w := suite.request("PUT", fmt.Sprintf("/api/todos/%d", id), map[string]any{
		"title":    "Renamed",
		"priority": "URGENT",
	})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	todo := response["todo"].(map[string]any)
	assert.Equal(suite.T(), "Renamed", todo["title"])
	assert.Equal(suite.T(), "URGENT", todo["priority"])
	assert.Equal(suite.T(), "keep me", todo["description"], "absent fields stay untouched")

	changed := response["changedFields"].([]any)
	assert.Equal(suite.T(), []any{"title", "priority"}, changed)

	var history models.TodoHistory
	suite.db.Where("todo_id = ? AND action = ?", id, models.HistoryUpdated).First(&history)
	assert.Equal(suite.T(), "Updated fields: title, priority", history.Description)
}

func (suite *RoutesTestSuite) TestUpdateTodo_RelationSets() {
	tagA := suite.createTestTag("a")
	tagB := suite.createTestTag("b")
	id := suite.createTodoViaAPI(map[string]any{
		"title":  "Main",
		"tagIds": []uint64{tagA.ID},
		"notes":  []string{"stale note"},
	})

	var staleNote models.Note
	suite.Require().NoError(suite.db.Where("todo_id = ?", id).First(&staleNote).Error)

	w := suite.request("PUT", fmt.Sprintf("/api/todos/%d", id), map[string]any{
		"tagIds":      []uint64{tagB.ID},
		"removeTags":  []uint64{tagA.ID},
		"notes":       []string{"fresh note"},
		"removeNotes": []uint64{staleNote.ID},
	})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	todo := response["todo"].(map[string]any)
	tags := todo["tags"].([]any)
	suite.Require().Len(tags, 1)
	assert.Equal(suite.T(), "b", tags[0].(map[string]any)["name"])

	notes := todo["notes"].([]any)
	suite.Require().Len(notes, 1)
	assert.Equal(suite.T(), "fresh note", notes[0].(map[string]any)["content"])

	changed := response["changedFields"].([]any)
	assert.ElementsMatch(suite.T(), []any{"tags", "notes"}, changed)
}

func (suite *RoutesTestSuite) TestUpdateTodo_ClearCategory() {
	category := suite.createTestCategory("Work")
	id := suite.createTodoViaAPI(map[string]any{"title": "Main", "categoryId": category.ID})

	w := suite.request("PUT", fmt.Sprintf("/api/todos/%d", id), map[string]any{
		"categoryId": nil,
	})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)
	todo := response["todo"].(map[string]any)
	assert.Nil(suite.T(), todo["categoryId"])
}

func (suite *RoutesTestSuite) TestUpdateTodo_NotFound() {
	w := suite.request("PUT", "/api/todos/999", map[string]any{"title": "x"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// Dependency validation

func (suite *RoutesTestSuite) TestUpdateTodo_SelfDependency() {
	id := suite.createTodoViaAPI(map[string]any{"title": "A"})

	w := suite.request("PUT", fmt.Sprintf("/api/todos/%d", id), map[string]any{
		"dependencies": []uint64{id},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.parse(w)
	assert.Contains(suite.T(), response["error"], "depend on itself")
}

func (suite *RoutesTestSuite) TestUpdateTodo_CircularDependency() {
	aID := suite.createTodoViaAPI(map[string]any{"title": "A"})
	bID := suite.createTodoViaAPI(map[string]any{"title": "B", "dependencies": []uint64{aID}})

	w := suite.request("PUT", fmt.Sprintf("/api/todos/%d", aID), map[string]any{
		"dependencies": []uint64{bID},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.parse(w)
	assert.Contains(suite.T(), response["error"], "circular")

	var count int64
	suite.db.Model(&models.TodoDependency{}).Where("todo_id = ?", aID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "rejected edge must not be written")
}

// Delete

func (suite *RoutesTestSuite) TestDeleteTodo_CascadesAndImpact() {
	tag := suite.createTestTag("doomed")
	depID := suite.createTodoViaAPI(map[string]any{"title": "Dependency"})
	id := suite.createTodoViaAPI(map[string]any{
		"title":        "Main",
		"tagIds":       []uint64{tag.ID},
		"notes":        []string{"n1", "n2"},
		"dependencies": []uint64{depID},
	})
	dependentID := suite.createTodoViaAPI(map[string]any{
		"title":        "Dependent",
		"dependencies": []uint64{id},
	})

	suite.Require().NoError(suite.db.Create(&models.Attachment{
		Filename: "file.txt",
		Filepath: "/tmp/file.txt",
		MimeType: "text/plain",
		TodoID:   id,
	}).Error)

	w := suite.request("DELETE", fmt.Sprintf("/api/todos/%d", id), nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	assert.Equal(suite.T(), float64(id), response["id"])
	assert.Equal(suite.T(), true, response["deleted"])

	stats := response["stats"].(map[string]any)
	relations := stats["relations"].(map[string]any)
	assert.Equal(suite.T(), float64(2), relations["notes"])
	assert.Equal(suite.T(), float64(1), relations["attachments"])
	assert.Equal(suite.T(), float64(1), relations["tags"])
	assert.Equal(suite.T(), float64(1), relations["dependencies"])
	assert.Equal(suite.T(), float64(1), relations["dependents"])

	impact := stats["impact"].(map[string]any)
	assert.Equal(suite.T(), float64(3), impact["totalTodosBefore"])
	assert.Equal(suite.T(), float64(2), impact["totalTodosAfter"])

	dependents := response["dependentTodos"].([]any)
	suite.Require().Len(dependents, 1)
	assert.Equal(suite.T(), float64(dependentID), dependents[0].(map[string]any)["id"])

	// All owned rows are gone
	for model, label := range map[any]string{
		&models.Note{}:        "notes",
		&models.TodoHistory{}: "history",
		&models.Attachment{}:  "attachments",
		&models.TodoTag{}:     "tag joins",
	} {
		var count int64
		suite.db.Model(model).Where("todo_id = ?", id).Count(&count)
		assert.Equal(suite.T(), int64(0), count, "expected no remaining %s", label)
	}

	var edgeCount int64
	suite.db.Model(&models.TodoDependency{}).
		Where("todo_id = ? OR depends_on_id = ?", id, id).
		Count(&edgeCount)
	assert.Equal(suite.T(), int64(0), edgeCount, "dependency edges removed on both sides")
}

func (suite *RoutesTestSuite) TestDeleteTodo_NotFound() {
	w := suite.request("DELETE", "/api/todos/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// Toggle

func (suite *RoutesTestSuite) TestToggleTodo_TwiceRestoresState() {
	id := suite.createTodoViaAPI(map[string]any{"title": "A"})

	w := suite.request("PATCH", fmt.Sprintf("/api/todos/%d/toggle", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)
	assert.Equal(suite.T(), true, response["todo"].(map[string]any)["completed"])

	w = suite.request("PATCH", fmt.Sprintf("/api/todos/%d/toggle", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response = suite.parse(w)
	assert.Equal(suite.T(), false, response["todo"].(map[string]any)["completed"])

	var toggleRows []models.TodoHistory
	suite.db.Where("todo_id = ? AND action IN ?", id,
		[]models.HistoryAction{models.HistoryCompleted, models.HistoryReopened}).
		Order("id ASC").
		Find(&toggleRows)
	suite.Require().Len(toggleRows, 2, "exactly one COMPLETED/REOPENED pair")
	assert.Equal(suite.T(), models.HistoryCompleted, toggleRows[0].Action)
	assert.Equal(suite.T(), models.HistoryReopened, toggleRows[1].Action)
}

func (suite *RoutesTestSuite) TestToggleTodo_IncompleteDependencyWarning() {
	depID := suite.createTodoViaAPI(map[string]any{"title": "Blocker"})
	id := suite.createTodoViaAPI(map[string]any{
		"title":        "Main",
		"dependencies": []uint64{depID},
	})

	w := suite.request("PATCH", fmt.Sprintf("/api/todos/%d/toggle", id), nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	response := suite.parse(w)

	// The toggle is never blocked, incomplete dependencies only warn
	assert.Equal(suite.T(), true, response["todo"].(map[string]any)["completed"])

	depStatus := response["dependencyStatus"].(map[string]any)
	assert.Equal(suite.T(), float64(1), depStatus["total"])
	assert.Equal(suite.T(), float64(1), depStatus["incomplete"])
	assert.NotEmpty(suite.T(), depStatus["warning"])

	incomplete := depStatus["incompleteDependencies"].([]any)
	suite.Require().Len(incomplete, 1)
	assert.Equal(suite.T(), "Blocker", incomplete[0].(map[string]any)["title"])

	stats := response["stats"].(map[string]any)
	system := stats["system"].(map[string]any)
	assert.Equal(suite.T(), float64(2), system["total"])
	assert.Equal(suite.T(), float64(1), system["completed"])
	assert.Equal(suite.T(), float64(50), system["completionRate"])
}

func (suite *RoutesTestSuite) TestCreateThenToggle_EndToEnd() {
	w := suite.request("POST", "/api/todos", map[string]any{"title": "A"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	response := suite.parse(w)
	todo := response["todo"].(map[string]any)
	assert.Equal(suite.T(), "MEDIUM", todo["priority"])
	assert.Equal(suite.T(), false, todo["completed"])
	id := uint64(todo["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/api/todos/%d/toggle", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response = suite.parse(w)
	assert.Equal(suite.T(), true, response["todo"].(map[string]any)["completed"])

	var history []models.TodoHistory
	suite.db.Where("todo_id = ?", id).Order("id ASC").Find(&history)
	suite.Require().Len(history, 2)
	assert.Equal(suite.T(), models.HistoryCreated, history[0].Action)
	assert.Equal(suite.T(), models.HistoryCompleted, history[1].Action)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
