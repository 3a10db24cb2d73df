package task

import (
	"context"
	"time"
)

// TaskFilter narrows ListTasks results. Zero values match everything.
type TaskFilter struct {
	ProjectID      string
	AssigneeID     string
	Status         Status
	IncludeDeleted bool
}

// TaskUpdate holds optional task field changes. Nil fields are left untouched.
type TaskUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *Status
	Priority    *Priority
	Progress    *int
	AssigneeID  *string
	ProjectID   *string
}

// Apply copies the set fields onto t and validates the result.
func (u TaskUpdate) Apply(t *Task, now time.Time) error {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = *u.EndDate
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Progress != nil {
		t.Progress = *u.Progress
	}
	if u.AssigneeID != nil {
		t.AssigneeID = *u.AssigneeID
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	t.UpdatedAt = now
	return t.Validate()
}

// Repository defines the storage interface for projects and tasks.
type Repository interface {
	// CreateProject adds a new project.
	CreateProject(ctx context.Context, p *Project) error

	// GetProject retrieves a project by ID. Returns ErrProjectNotFound if missing.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns all projects ordered by start date.
	ListProjects(ctx context.Context) ([]*Project, error)

	// CreateTask adds a new task. The task must pass Validate.
	CreateTask(ctx context.Context, t *Task) error

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if missing.
	GetTask(ctx context.Context, id string) (*Task, error)

	// UpdateTask applies the update atomically and returns the stored task.
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error)

	// DeleteTask soft deletes a task.
	DeleteTask(ctx context.Context, id string) error

	// RestoreTask clears a soft delete.
	RestoreTask(ctx context.Context, id string) error

	// ListTasks returns tasks matching the filter ordered by start date and name.
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// ListTasksInRange returns live tasks whose date range overlaps [start, end].
	ListTasksInRange(ctx context.Context, start, end time.Time) ([]*Task, error)

	// Close releases any resources held by the repository.
	Close() error
}
