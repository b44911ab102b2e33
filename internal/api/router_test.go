package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskline/task-api/internal/core/domain"
	"github.com/taskline/task-api/internal/core/ports"
	"github.com/taskline/task-api/internal/core/service"
	"github.com/taskline/task-api/internal/infrastructure/session"
)

// memUserRepo is an in-memory UserRepository with the same contract as the
// Postgres implementation, including the uniqueness guarantee.
type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	created := *user
	created.ID = r.nextID
	r.users[created.Username] = &created
	return &created, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

type memTaskRepo struct {
	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *task
	stored.ID = r.nextID
	r.tasks[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memTaskRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, userID, taskID int64, fields ports.UpdateTaskFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	if fields.Title != nil {
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Completed != nil {
		task.Completed = *fields.Completed
	}
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, userID, taskID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sessions := session.NewStore()
	authService := service.NewAuthService(newMemUserRepo(), sessions, bcrypt.MinCost, zerolog.Nop())
	taskService := service.NewTaskService(newMemTaskRepo(), zerolog.Nop())
	return NewRouter(db, authService, taskService, zerolog.Nop(), prometheus.NewRegistry())
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestAPI_RootStatus(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Task API is running" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestAPI_RegisterLoginTaskLifecycle(t *testing.T) {
	e := newTestServer(t)

	// Register.
	rec := doJSON(e, http.MethodPost, "/register", `{"username":"kaelen","password":"test123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := decode(t, rec)["user_id"]; !ok {
		t.Fatalf("register response missing user_id: %s", rec.Body.String())
	}

	// Duplicate registration fails with 400.
	rec = doJSON(e, http.MethodPost, "/register", `{"username":"kaelen","password":"test123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}

	// Login.
	rec = doJSON(e, http.MethodPost, "/login", `{"username":"kaelen","password":"test123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decode(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token")
	}

	// Create a task.
	rec = doJSON(e, http.MethodPost, "/tasks",
		`{"title":"Finish resume projects","description":"Build task API"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	taskID := int64(decode(t, rec)["task_id"].(float64))

	// List: one incomplete task.
	rec = doJSON(e, http.MethodGet, "/tasks", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	tasks := decode(t, rec)["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if completed := tasks[0].(map[string]any)["completed"].(bool); completed {
		t.Fatalf("new task must start incomplete")
	}

	// Mark completed.
	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), `{"completed":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// List again: same task, now completed.
	rec = doJSON(e, http.MethodGet, "/tasks", "", token)
	tasks = decode(t, rec)["tasks"].([]any)
	task := tasks[0].(map[string]any)
	if !task["completed"].(bool) || task["title"] != "Finish resume projects" {
		t.Fatalf("unexpected task after update: %v", task)
	}

	// Delete, then delete again.
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestAPI_LoginFailures(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/register", `{"username":"kaelen","password":"test123"}`, "")

	// Wrong password and unknown username return the same 401.
	for _, body := range []string{
		`{"username":"kaelen","password":"wrongpass"}`,
		`{"username":"nobody","password":"test123"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/login", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401, got %d", body, rec.Code)
		}
		if msg := decode(t, rec)["error"]; msg != "invalid credentials" {
			t.Fatalf("body %s: unexpected error message %v", body, msg)
		}
	}

	// Missing field is a 400, not a 401.
	rec := doJSON(e, http.MethodPost, "/login", `{"username":"kaelen"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAPI_RegisterValidation(t *testing.T) {
	e := newTestServer(t)

	cases := []string{
		`{}`,
		`{"username":"kaelen"}`,
		`{"username":"ab","password":"test123"}`,
		`{"username":"kaelen","password":"12345"}`,
	}
	for _, body := range cases {
		rec := doJSON(e, http.MethodPost, "/register", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d: %s", body, rec.Code, rec.Body.String())
		}
		if _, ok := decode(t, rec)["error"]; !ok {
			t.Fatalf("body %s: expected error envelope, got %s", body, rec.Body.String())
		}
	}
}

func TestAPI_TasksRequireAuth(t *testing.T) {
	e := newTestServer(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
	} {
		rec := doJSON(e, probe.method, probe.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", probe.method, probe.path, rec.Code)
		}
	}

	rec := doJSON(e, http.MethodGet, "/tasks", "", "not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: expected 401, got %d", rec.Code)
	}
}

func TestAPI_TasksAreOwnerScoped(t *testing.T) {
	e := newTestServer(t)

	tokens := make(map[string]string)
	for _, name := range []string{"alice", "basil"} {
		doJSON(e, http.MethodPost, "/register", fmt.Sprintf(`{"username":%q,"password":"test123"}`, name), "")
		rec := doJSON(e, http.MethodPost, "/login", fmt.Sprintf(`{"username":%q,"password":"test123"}`, name), "")
		tokens[name], _ = decode(t, rec)["token"].(string)
	}

	rec := doJSON(e, http.MethodPost, "/tasks", `{"title":"alice's task"}`, tokens["alice"])
	taskID := int64(decode(t, rec)["task_id"].(float64))

	// Basil cannot see, modify, or delete it; every probe is a plain 404.
	rec = doJSON(e, http.MethodGet, "/tasks", "", tokens["basil"])
	if tasks := decode(t, rec)["tasks"].([]any); len(tasks) != 0 {
		t.Fatalf("expected empty list for other user, got %d tasks", len(tasks))
	}
	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), `{"completed":true}`, tokens["basil"])
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), "", tokens["basil"])
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", rec.Code)
	}

	// Still intact for its owner.
	rec = doJSON(e, http.MethodGet, "/tasks", "", tokens["alice"])
	if tasks := decode(t, rec)["tasks"].([]any); len(tasks) != 1 {
		t.Fatalf("owner should still see the task, got %d", len(tasks))
	}
}

func TestAPI_ListNewestFirst(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/register", `{"username":"kaelen","password":"test123"}`, "")
	rec := doJSON(e, http.MethodPost, "/login", `{"username":"kaelen","password":"test123"}`, "")
	token, _ := decode(t, rec)["token"].(string)

	for _, title := range []string{"first", "second", "third"} {
		doJSON(e, http.MethodPost, "/tasks", fmt.Sprintf(`{"title":%q}`, title), token)
	}

	rec = doJSON(e, http.MethodGet, "/tasks", "", token)
	tasks := decode(t, rec)["tasks"].([]any)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	got := []string{
		tasks[0].(map[string]any)["title"].(string),
		tasks[1].(map[string]any)["title"].(string),
		tasks[2].(map[string]any)["title"].(string),
	}
	want := []string{"third", "second", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAPI_RawTokenAccepted(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/register", `{"username":"kaelen","password":"test123"}`, "")
	rec := doJSON(e, http.MethodPost, "/login", `{"username":"kaelen","password":"test123"}`, "")
	token, _ := decode(t, rec)["token"].(string)

	// Authorization header without the Bearer prefix.
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", token)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("raw token: expected 200, got %d", recorder.Code)
	}
}
