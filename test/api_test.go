package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/api"
	"github.com/yourname/daybook/internal/auth"
	"github.com/yourname/daybook/internal/config"
	"github.com/yourname/daybook/internal/storage"
)

type testApp struct {
	logger      internal.Logger
	journalRepo storage.JournalRepository
	todoRepo    storage.TodoRepository
}

func (a *testApp) Logger() internal.Logger                { return a.logger }
func (a *testApp) JournalRepo() storage.JournalRepository { return a.journalRepo }
func (a *testApp) TodoRepo() storage.TodoRepository       { return a.todoRepo }

func setupRouter(t *testing.T) *gin.Engine {
	testDir := t.TempDir()
	entriesFile := testDir + "/test_journal_entries.json"
	todosFile := testDir + "/test_todos.json"

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	journalRepo, todoRepo, err := storage.NewFileRepositories(entriesFile, todosFile, logger)
	assert.NoError(t, err)

	a := &testApp{logger: logger, journalRepo: journalRepo, todoRepo: todoRepo}
	cfg := &config.Config{Env: "development", DevToken: "MOCK-TOKEN"}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(auth.NewLocalAuthProvider(cfg.DevToken, logger), cfg))
	r.POST("/journal", api.PostEntry(a))
	r.GET("/journal", api.ListEntries(a))
	r.GET("/journal/count", api.GetEntryCount(a))
	r.GET("/journal/stats", api.GetJournalStats(a))
	r.PUT("/journal/:id", api.PutEntry(a))
	r.DELETE("/journal/:id", api.DeleteEntry(a))
	r.POST("/todos", api.PostTodo(a))
	r.GET("/todos", api.ListTodos(a))
	r.PUT("/todos/:id", api.PutTodo(a))
	r.DELETE("/todos/:id", api.DeleteTodo(a))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer MOCK-TOKEN")
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)
	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/journal", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)

	rec = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/journal", nil)
	req.Header.Set("Authorization", "Bearer WRONG-TOKEN")
	r.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)
}

func TestPostEntry_ValidAndInvalid(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, "POST", "/journal", `{"date":"2026-01-22","text":"wrote some Go","tag":"work"}`)
	assert.Equal(t, 200, rec.Code)

	// Missing text
	rec = doJSON(r, "POST", "/journal", `{"date":"2026-01-22"}`)
	assert.Equal(t, 400, rec.Code)

	// Date not YYYY-MM-DD
	rec = doJSON(r, "POST", "/journal", `{"date":"22/01/2026","text":"oops"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestListEntries_Pagination(t *testing.T) {
	r := setupRouter(t)

	for _, date := range []string{"2026-01-20", "2026-01-21", "2026-01-22"} {
		rec := doJSON(r, "POST", "/journal", `{"date":"`+date+`","text":"entry"}`)
		assert.Equal(t, 200, rec.Code)
	}

	rec := doJSON(r, "GET", "/journal?limit=2", "")
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data struct {
			Entries   []internal.JournalEntry `json:"entries"`
			Count     int                     `json:"count"`
			NextToken string                  `json:"next_token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Count)
	assert.Len(t, resp.Data.Entries, 2)
	assert.Equal(t, "2026-01-22", resp.Data.Entries[0].Date) // most recent first
	assert.NotEmpty(t, resp.Data.NextToken)

	rec = doJSON(r, "GET", "/journal?limit=2&nextToken="+resp.Data.NextToken, "")
	assert.Equal(t, 200, rec.Code)
	var lastPage struct {
		Data struct {
			Entries   []internal.JournalEntry `json:"entries"`
			Count     int                     `json:"count"`
			NextToken string                  `json:"next_token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lastPage))
	assert.Equal(t, 1, lastPage.Data.Count)
	assert.Equal(t, "2026-01-20", lastPage.Data.Entries[0].Date)
	assert.Empty(t, lastPage.Data.NextToken)
}

func TestEntryCount(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, "GET", "/journal/count", "")
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Meta map[string]any `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 0, resp.Meta["count"])

	doJSON(r, "POST", "/journal", `{"date":"2026-01-22","text":"one"}`)
	doJSON(r, "POST", "/journal", `{"date":"2026-01-22","text":"two"}`)

	rec = doJSON(r, "GET", "/journal/count", "")
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Meta["count"])
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, "POST", "/journal", `{"date":"2026-01-22","text":"draft"}`)
	assert.Equal(t, 200, rec.Code)
	var created struct {
		Data internal.JournalEntry `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.ID)

	rec = doJSON(r, "PUT", "/journal/"+created.Data.ID, `{"date":"2026-01-22","text":"final","tag":"done"}`)
	assert.Equal(t, 200, rec.Code)
	var updated struct {
		Data internal.JournalEntry `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "final", updated.Data.Text)
	assert.Equal(t, "done", updated.Data.Tag)

	rec = doJSON(r, "DELETE", "/journal/"+created.Data.ID, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "PUT", "/journal/"+created.Data.ID, `{"date":"2026-01-22","text":"gone"}`)
	assert.Equal(t, 404, rec.Code)

	rec = doJSON(r, "DELETE", "/journal/"+created.Data.ID, "")
	assert.Equal(t, 404, rec.Code)
}

func TestJournalStatsEndpoint(t *testing.T) {
	r := setupRouter(t)

	today := time.Now()
	for _, d := range []time.Time{today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -2)} {
		rec := doJSON(r, "POST", "/journal", `{"date":"`+d.Format("2006-01-02")+`","text":"entry"}`)
		assert.Equal(t, 200, rec.Code)
	}

	rec := doJSON(r, "GET", "/journal/stats", "")
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data struct {
			Streaks struct {
				CurrentStreak int `json:"current_streak"`
				LongestStreak int `json:"longest_streak"`
			} `json:"streaks"`
			Activity     []map[string]any `json:"activity"`
			ActivityDays []int            `json:"activity_days"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// All three days may not share a month, but the streak is month-agnostic.
	assert.Equal(t, 3, resp.Data.Streaks.CurrentStreak)
	assert.GreaterOrEqual(t, resp.Data.Streaks.LongestStreak, 3)
	assert.EqualValues(t, int(today.Month()), resp.Meta["month"])

	rec = doJSON(r, "GET", "/journal/stats?month=13", "")
	assert.Equal(t, 400, rec.Code)
}

func TestTodoCRUD(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, "POST", "/todos", `{"title":"water the plants"}`)
	assert.Equal(t, 200, rec.Code)
	var created struct {
		Data internal.Todo `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Data.Done)

	// Missing title
	rec = doJSON(r, "POST", "/todos", `{}`)
	assert.Equal(t, 400, rec.Code)

	rec = doJSON(r, "PUT", "/todos/"+created.Data.ID, `{"title":"water the plants","done":true}`)
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "GET", "/todos", "")
	assert.Equal(t, 200, rec.Code)
	var listed struct {
		Data []internal.Todo `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
	assert.True(t, listed.Data[0].Done)

	rec = doJSON(r, "DELETE", "/todos/"+created.Data.ID, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "DELETE", "/todos/"+created.Data.ID, "")
	assert.Equal(t, 404, rec.Code)
}
