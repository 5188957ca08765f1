package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteapp-api/internal/config"
	"noteapp-api/internal/handler"
	"noteapp-api/internal/middleware"
	"noteapp-api/internal/schedule"
	"noteapp-api/internal/store"
)

const testPassword = "testpass123"

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
			t.Fatalf("migration: %v", err)
		}
	}

	cfg := &config.Config{
		AppName:         "NoteApp",
		Version:         "1.0.0",
		JWTSecret:       secret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}

	st := store.New(pool)
	eng := schedule.New(st)
	h := handler.New(st, eng, cfg, zerolog.Nop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// generous limits so tests never trip the limiter
	h.Register(router, middleware.NewRateLimiter(1000, 1000))
	return router
}

func doReq(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

type userResp struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type noteResp struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type taskResp struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date"`
	Status    string     `json:"status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type eventResp struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	LinkedTaskID *int64    `json:"linked_task_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type errResp struct {
	Error string `json:"error"`
}

func registerUser(t *testing.T, r *gin.Engine) (email string) {
	t.Helper()
	email = fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	w := doReq(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return email
}

func newUser(t *testing.T, r *gin.Engine) (token string) {
	t.Helper()
	email := registerUser(t, r)
	w := doReq(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[tokenResp](t, w).AccessToken
}

func createEvent(t *testing.T, r *gin.Engine, token, title string, start, end time.Time) eventResp {
	t.Helper()
	w := doReq(t, r, http.MethodPost, "/api/calendar", token, gin.H{
		"title": title, "start_time": start, "end_time": end,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[eventResp](t, w)
}

// ----- health -----

func TestHealth(t *testing.T) {
	r := setup(t)
	w := doReq(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

// ----- auth -----

func TestRegisterValidation(t *testing.T) {
	r := setup(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"empty email", gin.H{"email": "", "password": testPassword}},
		{"empty password", gin.H{"email": "a@b.com", "password": ""}},
		{"short password", gin.H{"email": "a@b.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doReq(t, r, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := setup(t)
	email := registerUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setup(t)
	email := registerUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthChallenge(t *testing.T) {
	r := setup(t)

	for _, token := range []string{"", "garbage"} {
		w := doReq(t, r, http.MethodGet, "/api/notes", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	}
}

func TestRefreshRotation(t *testing.T) {
	r := setup(t)
	email := registerUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[tokenResp](t, w)
	assert.Equal(t, "bearer", first.TokenType)

	w = doReq(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refresh_token": first.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[tokenResp](t, w)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the rotated-out token must be dead
	w = doReq(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refresh_token": first.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reuse is treated as theft: the replacement is revoked too
	w = doReq(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refresh_token": second.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	w := doReq(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[userResp](t, w)
	assert.NotZero(t, me.ID)
	assert.NotEmpty(t, me.Email)
}

// ----- notes -----

func TestNoteCRUD(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/notes", token, gin.H{
		"title": "Groceries", "content": "milk, eggs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[noteResp](t, w)
	require.NotNil(t, created.Content)
	assert.Equal(t, "milk, eggs", *created.Content)

	w = doReq(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doReq(t, r, http.MethodGet, "/api/notes?search=groc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]noteResp](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = doReq(t, r, http.MethodGet, "/api/notes?search=nomatch", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]noteResp](t, w))

	w = doReq(t, r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doReq(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Note not found", decode[errResp](t, w).Error)
}

func TestNotePartialUpdate(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/notes", token, gin.H{
		"title": "Draft", "content": "original",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[noteResp](t, w)
	path := fmt.Sprintf("/api/notes/%d", created.ID)

	// empty payload is a no-op, updated_at untouched
	w = doReq(t, r, http.MethodPut, path, token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	same := decode[noteResp](t, w)
	assert.Equal(t, "Draft", same.Title)
	assert.True(t, same.UpdatedAt.Equal(created.UpdatedAt))

	// absent content stays put when only the title changes
	w = doReq(t, r, http.MethodPut, path, token, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	renamed := decode[noteResp](t, w)
	assert.Equal(t, "Renamed", renamed.Title)
	require.NotNil(t, renamed.Content)
	assert.Equal(t, "original", *renamed.Content)
	assert.True(t, renamed.UpdatedAt.After(created.UpdatedAt))

	// explicit null clears content
	w = doReq(t, r, http.MethodPut, path, token, gin.H{"content": nil})
	require.Equal(t, http.StatusOK, w.Code)
	cleared := decode[noteResp](t, w)
	assert.Nil(t, cleared.Content)
	assert.Equal(t, "Renamed", cleared.Title)

	// null title is rejected, the field is not nullable
	w = doReq(t, r, http.MethodPut, path, token, gin.H{"title": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ----- tasks -----

func TestTaskStatusLifecycle(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/tasks", token, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[taskResp](t, w)
	assert.Equal(t, "todo", created.Status)
	assert.Nil(t, created.DueDate)

	w = doReq(t, r, http.MethodPost, "/api/tasks", token, gin.H{
		"title": "Bad", "status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/api/tasks/%d", created.ID)
	w = doReq(t, r, http.MethodPut, path, token, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", decode[taskResp](t, w).Status)

	w = doReq(t, r, http.MethodPut, path, token, gin.H{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doReq(t, r, http.MethodGet, "/api/tasks?status=in_progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]taskResp](t, w), 1)

	w = doReq(t, r, http.MethodGet, "/api/tasks?status=completed", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]taskResp](t, w))

	w = doReq(t, r, http.MethodGet, "/api/tasks?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskOrderingDueDateNullsLast(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	later := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	sooner := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	for _, body := range []gin.H{
		{"title": "no due date"},
		{"title": "later", "due_date": later},
		{"title": "sooner", "due_date": sooner},
	} {
		w := doReq(t, r, http.MethodPost, "/api/tasks", token, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doReq(t, r, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]taskResp](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, "sooner", list[0].Title)
	assert.Equal(t, "later", list[1].Title)
	assert.Equal(t, "no due date", list[2].Title)
}

// ----- ownership -----

func TestOwnershipIsolation(t *testing.T) {
	r := setup(t)
	alice := newUser(t, r)
	bob := newUser(t, r)

	w := doReq(t, r, http.MethodPost, "/api/notes", alice, gin.H{"title": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	note := decode[noteResp](t, w)
	path := fmt.Sprintf("/api/notes/%d", note.ID)

	// wrong owner and nonexistent id are indistinguishable
	w = doReq(t, r, http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	crossTenant := decode[errResp](t, w).Error

	w = doReq(t, r, http.MethodGet, "/api/notes/999999999", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, crossTenant, decode[errResp](t, w).Error)

	w = doReq(t, r, http.MethodPut, path, bob, gin.H{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doReq(t, r, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doReq(t, r, http.MethodGet, "/api/notes", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]noteResp](t, w))

	// and the owner still sees it untouched
	w = doReq(t, r, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", decode[noteResp](t, w).Title)
}

// ----- pagination -----

func TestPaginationBounds(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)

	for _, q := range []string{"limit=0", "limit=101", "limit=-5", "skip=-1", "limit=abc"} {
		w := doReq(t, r, http.MethodGet, "/api/notes?"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	for i := 0; i < 3; i++ {
		w := doReq(t, r, http.MethodPost, "/api/notes", token, gin.H{
			"title": fmt.Sprintf("note %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doReq(t, r, http.MethodGet, "/api/notes?skip=1&limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]noteResp](t, w), 1)

	w = doReq(t, r, http.MethodGet, "/api/notes?skip=100", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]noteResp](t, w))
}

// ----- calendar -----

func TestEventTimeRangeLaw(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	w := doReq(t, r, http.MethodPost, "/api/calendar", token, gin.H{
		"title": "zero length", "start_time": start, "end_time": start,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doReq(t, r, http.MethodPost, "/api/calendar", token, gin.H{
		"title": "backwards", "start_time": start, "end_time": start.Add(-time.Second),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "end_time must be after start_time", decode[errResp](t, w).Error)

	w = doReq(t, r, http.MethodPost, "/api/calendar", token, gin.H{
		"title": "one second", "start_time": start, "end_time": start.Add(time.Second),
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestEventConflictBoundary(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	createEvent(t, r, token, "First", start, start.Add(time.Hour))

	// touching boundary is not overlap
	createEvent(t, r, token, "Back to back", start.Add(time.Hour), start.Add(2*time.Hour))

	w := doReq(t, r, http.MethodPost, "/api/calendar", token, gin.H{
		"title":      "Straddler",
		"start_time": start.Add(30 * time.Minute),
		"end_time":   start.Add(90 * time.Minute),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Event conflicts with existing event: First", decode[errResp](t, w).Error)
}

func TestEventConflictScopedToOwner(t *testing.T) {
	r := setup(t)
	alice := newUser(t, r)
	bob := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	createEvent(t, r, alice, "Alice busy", start, start.Add(time.Hour))
	// same slot is free for another user
	createEvent(t, r, bob, "Bob busy", start, start.Add(time.Hour))
}

func TestEventUpdateSkipsConflictCheck(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	createEvent(t, r, token, "Anchor", start, start.Add(time.Hour))
	other := createEvent(t, r, token, "Movable", start.Add(2*time.Hour), start.Add(3*time.Hour))

	// historical behavior: an update may introduce an overlap
	w := doReq(t, r, http.MethodPut, fmt.Sprintf("/api/calendar/%d", other.ID), token, gin.H{
		"start_time": start.Add(30 * time.Minute),
		"end_time":   start.Add(90 * time.Minute),
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestEventPartialUpdateRevalidatesRange(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	ev := createEvent(t, r, token, "Meeting", start, start.Add(time.Hour))
	path := fmt.Sprintf("/api/calendar/%d", ev.ID)

	// moving only start_time past the stored end_time must fail
	w := doReq(t, r, http.MethodPut, path, token, gin.H{
		"start_time": start.Add(2 * time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "end_time must be after start_time", decode[errResp](t, w).Error)

	// and the stored event is untouched
	w = doReq(t, r, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[eventResp](t, w).StartTime.Equal(start))
}

func TestLinkIntegrity(t *testing.T) {
	r := setup(t)
	alice := newUser(t, r)
	bob := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	w := doReq(t, r, http.MethodPost, "/api/tasks", alice, gin.H{"title": "Alice task"})
	require.Equal(t, http.StatusCreated, w.Code)
	aliceTask := decode[taskResp](t, w)

	// bob cannot link to alice's task
	w = doReq(t, r, http.MethodPost, "/api/calendar", bob, gin.H{
		"title":          "Sneaky",
		"start_time":     start,
		"end_time":       start.Add(time.Hour),
		"linked_task_id": aliceTask.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Linked task not found or not owned by user", decode[errResp](t, w).Error)

	// alice can
	w = doReq(t, r, http.MethodPost, "/api/calendar", alice, gin.H{
		"title":          "Linked",
		"start_time":     start,
		"end_time":       start.Add(time.Hour),
		"linked_task_id": aliceTask.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ev := decode[eventResp](t, w)
	require.NotNil(t, ev.LinkedTaskID)
	assert.Equal(t, aliceTask.ID, *ev.LinkedTaskID)

	// unlink via the zero sentinel
	path := fmt.Sprintf("/api/calendar/%d", ev.ID)
	w = doReq(t, r, http.MethodPut, path, alice, gin.H{"linked_task_id": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[eventResp](t, w).LinkedTaskID)

	// relink, then deleting the task clears the link without
	// deleting the event
	w = doReq(t, r, http.MethodPut, path, alice, gin.H{"linked_task_id": aliceTask.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doReq(t, r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", aliceTask.ID), alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doReq(t, r, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[eventResp](t, w).LinkedTaskID)
}

func TestCalendarExport(t *testing.T) {
	r := setup(t)
	token := newUser(t, r)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	createEvent(t, r, token, "Dentist", start, start.Add(time.Hour))

	w := doReq(t, r, http.MethodGet, "/api/calendar/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "SUMMARY:Dentist")
}

// ----- full scenario -----

func TestEndToEndScenario(t *testing.T) {
	r := setup(t)
	alice := newUser(t, r)
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	w := doReq(t, r, http.MethodPost, "/api/tasks", alice, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[taskResp](t, w)
	assert.Equal(t, "todo", task.Status)

	w = doReq(t, r, http.MethodPost, "/api/calendar", alice, gin.H{
		"title":          "Shopping",
		"start_time":     start,
		"end_time":       start.Add(time.Hour),
		"linked_task_id": task.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[eventResp](t, w)

	w = doReq(t, r, http.MethodPost, "/api/calendar", alice, gin.H{
		"title":      "Errands",
		"start_time": start.Add(30 * time.Minute),
		"end_time":   start.Add(90 * time.Minute),
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Event conflicts with existing event: Shopping", decode[errResp](t, w).Error)

	w = doReq(t, r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	eventPath := fmt.Sprintf("/api/calendar/%d", event.ID)
	w = doReq(t, r, http.MethodGet, eventPath, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[eventResp](t, w).LinkedTaskID)

	bob := newUser(t, r)
	w = doReq(t, r, http.MethodGet, eventPath, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Calendar event not found", decode[errResp](t, w).Error)
}
