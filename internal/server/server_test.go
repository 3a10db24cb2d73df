package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/ganttline/internal/db"
	"github.com/javiermolinar/ganttline/internal/gantt"
)

var fixedNow = time.Date(2025, 6, 8, 10, 0, 0, 0, time.Local)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	srv := New(repo, Options{
		Mode:   gantt.ModeDay,
		Locale: gantt.LocaleEN,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return fixedNow },
	})
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("got status %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func createTask(t *testing.T, h http.Handler, body map[string]any) TaskResponse {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/tasks", body)
	expectStatus(t, w, http.StatusCreated)
	return decode[TaskResponse](t, w)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	expectStatus(t, w, http.StatusOK)

	got := decode[HealthResponse](t, w)
	if got.Status != "ok" || got.Database != "connected" {
		t.Errorf("unexpected health response %+v", got)
	}
}

func TestProjects(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/projects", map[string]any{
		"name":      "Website",
		"color":     "#10b981",
		"status":    "active",
		"startDate": "2025-06-01",
		"endDate":   "2025-06-30",
	})
	expectStatus(t, w, http.StatusCreated)
	created := decode[ProjectResponse](t, w)
	if created.Color != "#10B981" || created.Status != "active" {
		t.Errorf("unexpected project %+v", created)
	}

	w = do(t, h, http.MethodPost, "/api/projects", map[string]any{"name": "Bad", "color": "blue"})
	expectStatus(t, w, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, w); got.Code != CodeValidation {
		t.Errorf("got code %q, want %q", got.Code, CodeValidation)
	}

	w = do(t, h, http.MethodGet, "/api/projects", nil)
	expectStatus(t, w, http.StatusOK)
	list := decode[[]ProjectResponse](t, w)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("unexpected project list %+v", list)
	}
}

func TestCreateTask(t *testing.T) {
	h := newTestServer(t)

	got := createTask(t, h, map[string]any{
		"name":       "Design",
		"startDate":  "2025-06-01",
		"endDate":    "2025-06-10",
		"priority":   "high",
		"assigneeId": "ana",
	})
	if got.StartDate != "2025-06-01" || got.EndDate != "2025-06-10" {
		t.Errorf("unexpected dates %s..%s", got.StartDate, got.EndDate)
	}
	if got.Duration != 10 || got.Status != "todo" || got.Priority != "high" || got.AssigneeID != "ana" {
		t.Errorf("unexpected task %+v", got)
	}

	w := do(t, h, http.MethodGet, "/api/tasks/"+got.ID, nil)
	expectStatus(t, w, http.StatusOK)
	if fetched := decode[TaskResponse](t, w); fetched.Name != "Design" {
		t.Errorf("got name %q", fetched.Name)
	}
}

func TestCreateTask_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing name",
			body:       map[string]any{"startDate": "2025-06-01"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
		},
		{
			name:       "end before start",
			body:       map[string]any{"name": "X", "startDate": "2025-06-10", "endDate": "2025-06-01"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "bad date",
			body:       map[string]any{"name": "X", "startDate": "10/06/2025"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "bad status",
			body:       map[string]any{"name": "X", "startDate": "2025-06-01", "status": "blocked"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "unknown project",
			body:       map[string]any{"name": "X", "startDate": "2025-06-01", "projectId": "missing"},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeProjectNotFound,
		},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/tasks", tt.body)
			expectStatus(t, w, tt.wantStatus)
			if got := decode[ErrorResponse](t, w); got.Code != tt.wantCode {
				t.Errorf("got code %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestGetTask_NotFound(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/tasks/nope", nil)
	expectStatus(t, w, http.StatusNotFound)
	if got := decode[ErrorResponse](t, w); got.Code != CodeTaskNotFound {
		t.Errorf("got code %q, want %q", got.Code, CodeTaskNotFound)
	}
}

func TestUpdateTask(t *testing.T) {
	h := newTestServer(t)
	created := createTask(t, h, map[string]any{"name": "Build", "startDate": "2025-06-01", "endDate": "2025-06-05"})

	w := do(t, h, http.MethodPatch, "/api/tasks/"+created.ID, map[string]any{
		"status":   "completed",
		"progress": 100,
		"endDate":  "+2d",
	})
	expectStatus(t, w, http.StatusOK)
	got := decode[TaskResponse](t, w)
	if got.Status != "completed" || got.Progress != 100 {
		t.Errorf("unexpected task %+v", got)
	}
	if got.EndDate != "2025-06-10" {
		t.Errorf("relative end date resolved to %s, want 2025-06-10", got.EndDate)
	}
	if got.Name != "Build" || got.StartDate != "2025-06-01" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	w = do(t, h, http.MethodPatch, "/api/tasks/"+created.ID, map[string]any{"endDate": "2025-05-01"})
	expectStatus(t, w, http.StatusBadRequest)

	w = do(t, h, http.MethodPatch, "/api/tasks/nope", map[string]any{"progress": 10})
	expectStatus(t, w, http.StatusNotFound)
}

func TestDeleteTask(t *testing.T) {
	h := newTestServer(t)
	created := createTask(t, h, map[string]any{"name": "Temp", "startDate": "2025-06-01"})
	createTask(t, h, map[string]any{"name": "Keep", "startDate": "2025-06-02"})

	w := do(t, h, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	expectStatus(t, w, http.StatusNoContent)

	w = do(t, h, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	expectStatus(t, w, http.StatusNotFound)

	w = do(t, h, http.MethodGet, "/api/tasks", nil)
	expectStatus(t, w, http.StatusOK)
	if list := decode[[]TaskResponse](t, w); len(list) != 1 || list[0].Name != "Keep" {
		t.Errorf("unexpected task list %+v", list)
	}

	w = do(t, h, http.MethodGet, "/api/tasks?all=true", nil)
	if list := decode[[]TaskResponse](t, w); len(list) != 2 {
		t.Errorf("expected deleted task with all=true, got %d tasks", len(list))
	}
}

func TestListTasks_StatusFilter(t *testing.T) {
	h := newTestServer(t)
	createTask(t, h, map[string]any{"name": "A", "startDate": "2025-06-01", "status": "in-progress"})
	createTask(t, h, map[string]any{"name": "B", "startDate": "2025-06-01"})

	w := do(t, h, http.MethodGet, "/api/tasks?status=in-progress", nil)
	expectStatus(t, w, http.StatusOK)
	if list := decode[[]TaskResponse](t, w); len(list) != 1 || list[0].Name != "A" {
		t.Errorf("unexpected filtered list %+v", list)
	}

	w = do(t, h, http.MethodGet, "/api/tasks?status=blocked", nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestGantt(t *testing.T) {
	h := newTestServer(t)
	createTask(t, h, map[string]any{"name": "A", "startDate": "2025-06-01", "endDate": "2025-06-10"})
	createTask(t, h, map[string]any{"name": "B", "startDate": "2025-06-05", "endDate": "2025-06-20"})

	w := do(t, h, http.MethodGet, "/api/gantt?today=2025-06-08", nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[GanttResponse](t, w)

	if got.Mode != "day" {
		t.Errorf("got mode %q, want default day", got.Mode)
	}
	if got.Window != (WindowResponse{Start: "2025-05-29", End: "2025-06-25", Days: 27}) {
		t.Errorf("unexpected window %+v", got.Window)
	}
	if got.Units != 27 || len(got.Timeline) != 27 {
		t.Errorf("got %d units and %d timeline items, want 27", got.Units, len(got.Timeline))
	}
	if len(got.Bars) != 2 || got.Bars[0].Name != "A" {
		t.Fatalf("unexpected bars %+v", got.Bars)
	}
	if a := got.Bars[0]; !almostEqual(a.Left, 300.0/27) || !almostEqual(a.Width, 1000.0/27) || !a.Visible {
		t.Errorf("unexpected bar A %+v", a)
	}
	if !got.Today.Visible || !almostEqual(got.Today.Position, 1000.0/27) {
		t.Errorf("unexpected today marker %+v", got.Today)
	}
}

func TestGantt_WeekMode(t *testing.T) {
	h := newTestServer(t)
	createTask(t, h, map[string]any{"name": "A", "startDate": "2025-06-01", "endDate": "2025-06-10"})

	w := do(t, h, http.MethodGet, "/api/gantt?mode=week&locale=pt-BR", nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[GanttResponse](t, w)
	if got.Mode != "week" || len(got.Timeline) == 0 {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.Timeline[0].Label != "Sem 22" {
		t.Errorf("got first label %q, want Sem 22", got.Timeline[0].Label)
	}
}

func TestGantt_BadQuery(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/api/gantt?mode=year", "/api/gantt?today=junho", "/api/gantt?locale=fr"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, path, nil)
			expectStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestInsights(t *testing.T) {
	h := newTestServer(t)
	createTask(t, h, map[string]any{"name": "Late", "startDate": "2025-06-01", "endDate": "2025-06-03"})

	w := do(t, h, http.MethodGet, "/api/insights", nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[InsightsResponse](t, w)
	if len(got.Insights) == 0 || got.Insights[0].Level != "critical" {
		t.Errorf("expected a critical insight first, got %+v", got.Insights)
	}
	if got.GeneratedAt == "" {
		t.Error("expected generatedAt")
	}
}
