// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

const (
	projectColumns = `id, name, color, status, progress, start_date, end_date, created_at`
	taskColumns    = `id, name, description, start_date, end_date, status, priority, progress,
		assignee_id, project_id, created_at, updated_at, deleted_at`
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Ping reports whether the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateProject adds a new project.
func (s *SQLite) CreateProject(ctx context.Context, p *task.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Color,
		p.Status,
		p.Progress,
		formatDate(p.StartDate),
		formatDate(p.EndDate),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *SQLite) GetProject(ctx context.Context, id string) (*task.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	p, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by start date and name.
func (s *SQLite) ListProjects(ctx context.Context) ([]*task.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY start_date, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*task.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, taskArgs(t)...)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID, including soft deleted ones.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return getTask(ctx, s.db, id)
}

func getTask(ctx context.Context, q querier, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// UpdateTask applies update to the stored task inside a transaction.
func (s *SQLite) UpdateTask(ctx context.Context, id string, update task.TaskUpdate) (*task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := update.Apply(t, s.now()); err != nil {
		return nil, err
	}

	query := `
		UPDATE tasks
		SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?,
		    priority = ?, progress = ?, assignee_id = ?, project_id = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		t.Name,
		t.Description,
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.Status,
		t.Priority,
		t.Progress,
		nullString(t.AssigneeID),
		nullString(t.ProjectID),
		t.UpdatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return t, nil
}

// DeleteTask soft deletes a live task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	query := `UPDATE tasks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, s.now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return nil
}

// RestoreTask clears a soft delete.
func (s *SQLite) RestoreTask(ctx context.Context, id string) error {
	query := `UPDATE tasks SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL`

	result, err := s.db.ExecContext(ctx, query, s.now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("restoring task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return nil
}

// ListTasks returns tasks matching filter ordered by start date and name.
func (s *SQLite) ListTasks(ctx context.Context, filter task.TaskFilter) ([]*task.Task, error) {
	var (
		where []string
		args  []any
	)
	if !filter.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if filter.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.AssigneeID != "" {
		where = append(where, "assignee_id = ?")
		args = append(args, filter.AssigneeID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_date, name`

	return s.queryTasks(ctx, query, args...)
}

// ListTasksInRange returns live tasks whose date range overlaps [start, end].
func (s *SQLite) ListTasksInRange(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE deleted_at IS NULL AND start_date <= ? AND end_date >= ?
		ORDER BY start_date, name
	`
	return s.queryTasks(ctx, query, formatDate(end), formatDate(start))
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func taskArgs(t *task.Task) []any {
	var deletedAt any
	if t.DeletedAt != nil {
		deletedAt = t.DeletedAt.Format(time.RFC3339)
	}
	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = t.CreatedAt
	}
	return []any{
		t.ID,
		t.Name,
		t.Description,
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.Status,
		t.Priority,
		t.Progress,
		nullString(t.AssigneeID),
		nullString(t.ProjectID),
		t.CreatedAt.Format(time.RFC3339),
		updatedAt.Format(time.RFC3339),
		deletedAt,
	}
}

func scanProject(row scanner) (*task.Project, error) {
	var (
		p          task.Project
		start, end string
		createdAt  string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Color, &p.Status, &p.Progress, &start, &end, &createdAt)
	if err != nil {
		return nil, err
	}

	if p.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if p.EndDate, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if p.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &p, nil
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t                    task.Task
		start, end           string
		createdAt, updatedAt string
		assigneeID           sql.NullString
		projectID            sql.NullString
		deletedAt            sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&start,
		&end,
		&t.Status,
		&t.Priority,
		&t.Progress,
		&assigneeID,
		&projectID,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if t.EndDate, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if t.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if t.UpdatedAt, err = parseDate(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	if deletedAt.Valid {
		d, err := parseDate(deletedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing deleted at: %w", err)
		}
		t.DeletedAt = &d
	}
	t.AssigneeID = assigneeID.String
	t.ProjectID = projectID.String

	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatDate(t time.Time) string {
	return t.Format(dateutil.DateLayout)
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat them as local midnight.
	if len(s) == 20 && s[10] == 'T' && strings.HasSuffix(s, "T00:00:00Z") {
		if t, err := time.ParseInLocation(dateutil.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
