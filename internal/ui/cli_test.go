package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/ganttline/internal/config"
	"github.com/javiermolinar/ganttline/internal/db"
	"github.com/javiermolinar/ganttline/internal/server"
	"github.com/javiermolinar/ganttline/internal/task"
)

var fixedNow = time.Date(2025, 6, 8, 10, 0, 0, 0, time.Local)

type testEnv struct {
	t      *testing.T
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	DisableColor()
	return &testEnv{t: t, dbPath: filepath.Join(t.TempDir(), "ganttline.db")}
}

// run executes one command against a fresh App, the way the binary does.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = e.dbPath
	cfg.Gantt.Locale = "en"

	app := NewApp(nil, cfg)
	app.now = func() time.Time { return fixedNow }

	var out bytes.Buffer
	app.SetOutput(&out)
	app.SetArgs(args)
	err := app.Execute()
	if cerr := app.Close(); cerr != nil {
		e.t.Fatalf("closing app: %v", cerr)
	}
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func (e *testEnv) tasks() []*task.Task {
	e.t.Helper()
	repo, err := db.New(e.dbPath)
	if err != nil {
		e.t.Fatalf("opening db: %v", err)
	}
	defer func() { _ = repo.Close() }()
	tasks, err := repo.ListTasks(context.Background(), task.TaskFilter{IncludeDeleted: true})
	if err != nil {
		e.t.Fatalf("listing tasks: %v", err)
	}
	return tasks
}

func TestVersion(t *testing.T) {
	out := newTestEnv(t).mustRun("version")
	if !strings.HasPrefix(out, "ganttline dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06", "--priority=high", "--assignee=ana")
	if !strings.Contains(out, "Design 2025-06-02 → 2025-06-06 (5d)") {
		t.Errorf("unexpected add output %q", out)
	}

	out = env.mustRun("add", "Review", "--start=tomorrow", "--end=+1w")
	if !strings.Contains(out, "2025-06-09 → 2025-06-15 (1w)") {
		t.Errorf("relative dates not resolved: %q", out)
	}

	out = env.mustRun("list")
	if !strings.Contains(out, "Design") || !strings.Contains(out, "Review") {
		t.Errorf("list is missing tasks: %q", out)
	}
	if !strings.Contains(out, "@ana") {
		t.Errorf("list is missing the assignee: %q", out)
	}
	if strings.Index(out, "Design") > strings.Index(out, "Review") {
		t.Error("tasks should be ordered by start date")
	}
}

func TestAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "end before start", args: []string{"add", "X", "--start=2025-06-05", "--end=2025-06-01"}, wantErr: task.ErrEndBeforeStart},
		{name: "bad priority", args: []string{"add", "X", "--priority=urgent"}, wantErr: task.ErrInvalidPriority},
		{name: "bad status", args: []string{"add", "X", "--status=done"}, wantErr: task.ErrInvalidStatus},
		{name: "unknown project", args: []string{"add", "X", "--project=nope"}, wantErr: task.ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEnv(t).run(tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("project", "add", "Website", "--color=#10b981", "--start=2025-06-01", "--end=2025-06-30", "--status=active")
	if !strings.Contains(out, "Created project") {
		t.Errorf("unexpected output %q", out)
	}
	env.mustRun("add", "Landing page", "--start=2025-06-02", "--end=2025-06-04", "--project=website")
	env.mustRun("add", "Unrelated", "--start=2025-06-02")

	out = env.mustRun("project", "list")
	if !strings.Contains(out, "Website") || !strings.Contains(out, "active") {
		t.Errorf("project list: %q", out)
	}

	out = env.mustRun("list", "--project=Website")
	if !strings.Contains(out, "Landing page") || strings.Contains(out, "Unrelated") {
		t.Errorf("project filter not applied: %q", out)
	}

	if _, err := env.run("project", "add", "Bad", "--color=blue"); !errors.Is(err, task.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")

	id := env.tasks()[0].ID
	out := env.mustRun("update", id[:6], "--status=completed", "--progress=100", "--end=+2d", "--name=Design v2")
	if !strings.Contains(out, "Updated task "+shortID(id)) {
		t.Errorf("unexpected output %q", out)
	}

	got := env.tasks()[0]
	if got.Name != "Design v2" || got.Status != task.StatusCompleted || got.Progress != 100 {
		t.Errorf("fields not updated: %+v", got)
	}
	if want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local); !got.EndDate.Equal(want) {
		t.Errorf("end date = %v, want %v", got.EndDate, want)
	}
	if got.Priority != task.PriorityMedium {
		t.Errorf("untouched priority changed to %s", got.Priority)
	}

	if _, err := env.run("update", "ffffffff", "--progress=10"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := env.run("update", id, "--progress=150"); !errors.Is(err, task.ErrInvalidProgress) {
		t.Errorf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestRemoveAndRestore(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "Design", "--start=2025-06-02")
	id := env.tasks()[0].ID

	env.mustRun("rm", shortID(id))
	if out := env.mustRun("list"); !strings.Contains(out, "No tasks found.") {
		t.Errorf("deleted task still listed: %q", out)
	}
	if out := env.mustRun("list", "--all"); !strings.Contains(out, "(deleted)") {
		t.Errorf("--all should show deleted tasks: %q", out)
	}

	env.mustRun("restore", shortID(id))
	if env.tasks()[0].IsDeleted() {
		t.Error("task should be restored")
	}
}

func TestGantt_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")

	out := env.mustRun("gantt", "--json", "--mode=day", "--today=2025-06-08")

	var resp server.GanttResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, out)
	}
	if resp.Mode != "day" {
		t.Errorf("got mode %q, want day", resp.Mode)
	}
	if len(resp.Bars) != 1 || resp.Bars[0].Name != "Design" || !resp.Bars[0].Visible {
		t.Fatalf("unexpected bars: %+v", resp.Bars)
	}
	if !resp.Today.Visible {
		t.Error("today marker should be visible")
	}
	if len(resp.Timeline) == 0 || resp.Timeline[0].Date != resp.Window.Start {
		t.Errorf("timeline should start at the window start: %+v", resp.Timeline)
	}
}

func TestGantt_Plain(t *testing.T) {
	env := newTestEnv(t)

	if out := env.mustRun("gantt", "--no-color"); !strings.Contains(out, "No tasks to chart") {
		t.Errorf("expected empty notice, got %q", out)
	}

	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")
	out := env.mustRun("gantt", "--no-color", "--width=80", "--mode=week")
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output contains escape codes")
	}
	if !strings.Contains(out, "Design") || !strings.ContainsRune(out, '█') {
		t.Errorf("chart is missing the task bar: %q", out)
	}
	if !strings.Contains(out, "1 tasks") {
		t.Errorf("missing footer: %q", out)
	}

	if _, err := env.run("gantt", "--mode=year"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestTimeline(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")

	out := env.mustRun("timeline", "--mode=week", "--today=2025-06-08")
	if !strings.Contains(out, "* W23") {
		t.Errorf("current week not marked: %q", out)
	}

	out = env.mustRun("timeline", "--mode=month", "--today=2025-06-08", "--locale=pt-BR")
	if !strings.Contains(out, "* Junho") {
		t.Errorf("expected pt-BR month label: %q", out)
	}
}

func TestInsights(t *testing.T) {
	env := newTestEnv(t)

	if out := env.mustRun("insights"); !strings.Contains(out, "Nenhuma tarefa cadastrada") {
		t.Errorf("expected empty notice, got %q", out)
	}

	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")
	out := env.mustRun("insights")
	if !strings.Contains(out, "1 tarefa atrasada") {
		t.Errorf("overdue task not reported: %q", out)
	}
}

func TestWeek(t *testing.T) {
	env := newTestEnv(t)

	if out := env.mustRun("week"); !strings.Contains(out, "No tasks this week.") {
		t.Errorf("expected empty notice, got %q", out)
	}

	env.mustRun("add", "Design", "--start=2025-06-02", "--end=2025-06-06")
	env.mustRun("add", "Review", "--start=2025-06-09", "--end=2025-06-13")

	out := env.mustRun("week")
	if !strings.Contains(out, "Week 2025-06-02 → 2025-06-08") {
		t.Errorf("wrong week: %q", out)
	}
	if !strings.Contains(out, "1 active · 1 starting · 1 due · 0 completed · 1 overdue") {
		t.Errorf("unexpected stats: %q", out)
	}
	if !strings.Contains(out, "Design") || strings.Contains(out, "Review") {
		t.Errorf("week should only list Design: %q", out)
	}

	out = env.mustRun("week", "--date=2025-06-11")
	if !strings.Contains(out, "Week 2025-06-09 → 2025-06-15") || !strings.Contains(out, "Review") {
		t.Errorf("explicit week not summarized: %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gantt]\nmode = \"month\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := newTestEnv(t).mustRun("config", "--show", "--config="+path)
	if !strings.Contains(out, "mode             = month") {
		t.Errorf("config file not applied: %q", out)
	}
	if !strings.Contains(out, "[server]") {
		t.Errorf("missing server section: %q", out)
	}
}
