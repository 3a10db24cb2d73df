// Package task defines the core domain types for ganttline.
package task

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/ganttline/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat
	ErrEndBeforeStart    = errors.New("end date must be on or after start date")
	ErrInvalidStatus     = errors.New("status must be one of todo, in-progress, review, completed")
	ErrInvalidPriority   = errors.New("priority must be one of low, medium, high")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrInvalidColor      = errors.New("color must be in #RRGGBB format")
)

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

// Status represents the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	default:
		return false
	}
}

// Active reports whether work on the task is still open.
func (s Status) Active() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusReview
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a unit of work with an inclusive calendar date range.
type Task struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	Priority    Priority
	Progress    int
	AssigneeID  string
	ProjectID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// New creates a new Task with validation.
// start and end accept anything dateutil.ParseRelativeDate does, evaluated
// against now. An empty end defaults to the start date.
func New(name, start, end string, now time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	dr, err := dateutil.NewDateRange(start, end, now)
	if err != nil {
		if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
			return nil, ErrEndBeforeStart
		}
		return nil, err
	}

	return &Task{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: dr.Start,
		EndDate:   dr.End,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks the invariants a stored task must satisfy.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return ErrInvalidDateFormat
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrEndBeforeStart
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.Progress < 0 || t.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// Span returns the task's normalized start and end dates.
func (t *Task) Span() (start, end time.Time) {
	return dateutil.StartOfDay(t.StartDate), dateutil.StartOfDay(t.EndDate)
}

// Duration returns the inclusive number of calendar days the task covers.
func (t *Task) Duration() int {
	start, end := t.Span()
	return dateutil.DaysBetween(start, end) + 1
}

// IsCompleted returns true if the task is completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsDeleted returns true if the task was soft deleted.
func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// IsOverdue returns true if the task ended before today and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && dateutil.StartOfDay(t.EndDate).Before(dateutil.StartOfDay(now))
}

// ActiveOn returns true if day falls within the task's date range.
func (t *Task) ActiveOn(day time.Time) bool {
	start, end := t.Span()
	d := dateutil.StartOfDay(day)
	return !d.Before(start) && !d.After(end)
}

// String returns a short human-readable form of the task.
func (t *Task) String() string {
	return fmt.Sprintf("%s (%s → %s)", t.Name, dateutil.FormatDate(t.StartDate), dateutil.FormatDate(t.EndDate))
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ParsePriority parses a priority name.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultProjectColor is used when a project has no color.
const DefaultProjectColor = "#3B82F6"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid returns true if the project status is a known value.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	default:
		return false
	}
}

// Project groups tasks and gives their bars a color.
type Project struct {
	ID        string
	Name      string
	Color     string
	Status    ProjectStatus
	Progress  int
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// NewProject creates a new Project with validation.
func NewProject(name, color, start, end string, now time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if color == "" {
		color = DefaultProjectColor
	}
	if !colorPattern.MatchString(color) {
		return nil, ErrInvalidColor
	}

	dr, err := dateutil.NewDateRange(start, end, now)
	if err != nil {
		if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
			return nil, ErrEndBeforeStart
		}
		return nil, err
	}

	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     strings.ToUpper(color),
		Status:    ProjectPlanning,
		StartDate: dr.Start,
		EndDate:   dr.End,
		CreatedAt: now,
	}, nil
}

// ExpectedProgress returns how far through its schedule the project should
// be on now, as a percentage capped at 100. ok is false when the project has
// not started or has a degenerate range.
func (p *Project) ExpectedProgress(now time.Time) (pct float64, ok bool) {
	total := dateutil.DaysBetween(p.StartDate, p.EndDate)
	elapsed := dateutil.DaysBetween(dateutil.StartOfDay(p.StartDate), dateutil.StartOfDay(now))
	if total <= 0 || elapsed <= 0 {
		return 0, false
	}
	return min(float64(elapsed)/float64(total)*100, 100), true
}

// CalculateProgress averages task progress; an empty slice yields 0.
func CalculateProgress(tasks []*Task) int {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return sum / len(tasks)
}
