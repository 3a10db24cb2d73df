package server

import (
	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/task"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeTaskNotFound    = "TASK_NOT_FOUND"
	CodeProjectNotFound = "PROJECT_NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// ProjectResponse is the JSON form of a project.
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Color     string `json:"color"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`
	AssigneeID  string `json:"assigneeId,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	Duration    int    `json:"duration"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`
	AssigneeID  string `json:"assigneeId"`
	ProjectID   string `json:"projectId"`
}

// UpdateTaskRequest is the body of PATCH /api/tasks/:id. Omitted fields are
// left untouched.
type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Progress    *int    `json:"progress"`
	AssigneeID  *string `json:"assigneeId"`
	ProjectID   *string `json:"projectId"`
}

// WindowResponse is the visible date range of a chart.
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// TimelineItemResponse is one header bucket.
type TimelineItemResponse struct {
	Date            string `json:"date"`
	End             string `json:"end"`
	Label           string `json:"label"`
	SubLabel        string `json:"subLabel"`
	IsCurrentPeriod bool   `json:"isCurrentPeriod"`
	IsWeekend       bool   `json:"isWeekend"`
}

// BarResponse is the geometry of one task bar.
type BarResponse struct {
	TaskID  string  `json:"taskId"`
	Name    string  `json:"name"`
	Left    float64 `json:"left"`
	Width   float64 `json:"width"`
	Visible bool    `json:"visible"`
}

// TodayResponse is the today marker position.
type TodayResponse struct {
	Position float64 `json:"position"`
	Visible  bool    `json:"visible"`
}

// GanttResponse is the JSON form of a computed layout.
type GanttResponse struct {
	Mode     string                 `json:"mode"`
	Window   WindowResponse         `json:"window"`
	Units    int                    `json:"units"`
	Timeline []TimelineItemResponse `json:"timeline"`
	Bars     []BarResponse          `json:"bars"`
	Today    TodayResponse          `json:"today"`
}

// InsightsResponse wraps the insight list.
type InsightsResponse struct {
	Insights    []insights.Insight `json:"insights"`
	GeneratedAt string             `json:"generatedAt"`
}

// ToProjectResponse converts a project to its JSON form.
func ToProjectResponse(p *task.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		Status:    string(p.Status),
		Progress:  p.Progress,
		StartDate: dateutil.FormatDate(p.StartDate),
		EndDate:   dateutil.FormatDate(p.EndDate),
	}
}

// ToTaskResponse converts a task to its JSON form.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   dateutil.FormatDate(t.StartDate),
		EndDate:     dateutil.FormatDate(t.EndDate),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Progress:    t.Progress,
		AssigneeID:  t.AssigneeID,
		ProjectID:   t.ProjectID,
		Duration:    t.Duration(),
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
}

// ToTaskListResponse converts tasks to their JSON form.
func ToTaskListResponse(tasks []*task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}

// ToGanttResponse converts a layout to its JSON form.
func ToGanttResponse(l gantt.Layout) GanttResponse {
	timeline := make([]TimelineItemResponse, 0, len(l.Timeline))
	for _, item := range l.Timeline {
		timeline = append(timeline, TimelineItemResponse{
			Date:            dateutil.FormatDate(item.Date),
			End:             dateutil.FormatDate(item.End),
			Label:           item.Label,
			SubLabel:        item.SubLabel,
			IsCurrentPeriod: item.IsCurrentPeriod,
			IsWeekend:       item.IsWeekend,
		})
	}

	bars := make([]BarResponse, 0, len(l.Rows))
	for _, row := range l.Rows {
		bars = append(bars, BarResponse{
			TaskID:  row.Task.ID,
			Name:    row.Task.Name,
			Left:    row.Bar.Left,
			Width:   row.Bar.Width,
			Visible: row.Bar.Visible,
		})
	}

	return GanttResponse{
		Mode: string(l.Mode),
		Window: WindowResponse{
			Start: dateutil.FormatDate(l.Window.Start),
			End:   dateutil.FormatDate(l.Window.End),
			Days:  l.Window.Days,
		},
		Units:    l.Units,
		Timeline: timeline,
		Bars:     bars,
		Today:    TodayResponse{Position: l.Today, Visible: l.TodayVisible},
	}
}
