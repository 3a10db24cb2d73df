package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/task"
)

// validationErrors map to 400 responses.
var validationErrors = []error{
	task.ErrEmptyName,
	task.ErrInvalidDateFormat,
	task.ErrEndBeforeStart,
	task.ErrInvalidStatus,
	task.ErrInvalidPriority,
	task.ErrInvalidProgress,
	task.ErrInvalidColor,
	gantt.ErrInvalidMode,
	gantt.ErrInvalidLocale,
}

func (s *Server) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeTaskNotFound})
		return
	case errors.Is(err, task.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeProjectNotFound})
		return
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeValidation})
			return
		}
	}

	s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "An internal error occurred",
		Code:  CodeInternal,
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request body: " + err.Error(),
		Code:  CodeInvalidRequest,
	})
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	dbStatus := "disconnected"
	if p, ok := s.repo.(Pinger); ok && p.Ping(c.Request.Context()) == nil {
		dbStatus = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: formatTimestamp(s.now()),
	})
}

// listProjects handles GET /api/projects.
func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.repo.ListProjects(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// createProject handles POST /api/projects.
func (s *Server) createProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := task.NewProject(req.Name, req.Color, req.StartDate, req.EndDate, s.now())
	if err != nil {
		s.handleError(c, err)
		return
	}
	if req.Status != "" {
		p.Status = task.ProjectStatus(strings.ToLower(req.Status))
		if !p.Status.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project status: " + req.Status, Code: CodeValidation})
			return
		}
	}
	if req.Progress < 0 || req.Progress > 100 {
		s.handleError(c, task.ErrInvalidProgress)
		return
	}
	p.Progress = req.Progress

	if err := s.repo.CreateProject(c.Request.Context(), p); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToProjectResponse(p))
}

// listTasks handles GET /api/tasks.
func (s *Server) listTasks(c *gin.Context) {
	filter := task.TaskFilter{
		ProjectID:      c.Query("project"),
		AssigneeID:     c.Query("assignee"),
		IncludeDeleted: c.Query("all") == "true",
	}
	if status := c.Query("status"); status != "" {
		st, err := task.ParseStatus(status)
		if err != nil {
			s.handleError(c, err)
			return
		}
		filter.Status = st
	}

	tasks, err := s.repo.ListTasks(c.Request.Context(), filter)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToTaskListResponse(tasks))
}

// createTask handles POST /api/tasks.
func (s *Server) createTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := task.New(req.Name, req.StartDate, req.EndDate, s.now())
	if err != nil {
		s.handleError(c, err)
		return
	}
	t.Description = req.Description
	t.Progress = req.Progress
	t.AssigneeID = req.AssigneeID
	t.ProjectID = req.ProjectID
	if req.Status != "" {
		if t.Status, err = task.ParseStatus(req.Status); err != nil {
			s.handleError(c, err)
			return
		}
	}
	if req.Priority != "" {
		if t.Priority, err = task.ParsePriority(req.Priority); err != nil {
			s.handleError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	if t.ProjectID != "" {
		if _, err := s.repo.GetProject(ctx, t.ProjectID); err != nil {
			s.handleError(c, err)
			return
		}
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToTaskResponse(t))
}

// getTask handles GET /api/tasks/:id.
func (s *Server) getTask(c *gin.Context) {
	t, err := s.repo.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToTaskResponse(t))
}

// updateTask handles PATCH /api/tasks/:id.
func (s *Server) updateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	update, err := s.toTaskUpdate(req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	ctx := c.Request.Context()
	if update.ProjectID != nil && *update.ProjectID != "" {
		if _, err := s.repo.GetProject(ctx, *update.ProjectID); err != nil {
			s.handleError(c, err)
			return
		}
	}

	t, err := s.repo.UpdateTask(ctx, c.Param("id"), update)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToTaskResponse(t))
}

func (s *Server) toTaskUpdate(req UpdateTaskRequest) (task.TaskUpdate, error) {
	update := task.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Progress:    req.Progress,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
	}

	now := s.now()
	for _, f := range []struct {
		in  *string
		out **time.Time
	}{
		{req.StartDate, &update.StartDate},
		{req.EndDate, &update.EndDate},
	} {
		if f.in == nil {
			continue
		}
		d, err := dateutil.ParseRelativeDate(*f.in, now)
		if err != nil {
			return task.TaskUpdate{}, err
		}
		*f.out = &d
	}

	if req.Status != nil {
		st, err := task.ParseStatus(*req.Status)
		if err != nil {
			return task.TaskUpdate{}, err
		}
		update.Status = &st
	}
	if req.Priority != nil {
		p, err := task.ParsePriority(*req.Priority)
		if err != nil {
			return task.TaskUpdate{}, err
		}
		update.Priority = &p
	}
	return update, nil
}

// deleteTask handles DELETE /api/tasks/:id.
func (s *Server) deleteTask(c *gin.Context) {
	if err := s.repo.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getGantt handles GET /api/gantt.
func (s *Server) getGantt(c *gin.Context) {
	mode := s.mode
	if q := c.Query("mode"); q != "" {
		m, err := gantt.ParseMode(q)
		if err != nil {
			s.handleError(c, err)
			return
		}
		mode = m
	}

	locale := s.locale
	if q := c.Query("locale"); q != "" {
		l, err := gantt.ParseLocale(q)
		if err != nil {
			s.handleError(c, err)
			return
		}
		locale = l
	}

	now := s.now()
	if q := c.Query("today"); q != "" {
		d, err := dateutil.ParseDate(q)
		if err != nil {
			s.handleError(c, err)
			return
		}
		now = d
	}

	tasks, err := s.repo.ListTasks(c.Request.Context(), task.TaskFilter{ProjectID: c.Query("project")})
	if err != nil {
		s.handleError(c, err)
		return
	}

	layout := gantt.Compute(tasks, mode, now, gantt.Options{Locale: locale})
	s.logger.Debug("layout computed", "mode", layout.Mode, "tasks", len(layout.Rows), "days", layout.Window.Days)
	c.JSON(http.StatusOK, ToGanttResponse(layout))
}

// getInsights handles GET /api/insights.
func (s *Server) getInsights(c *gin.Context) {
	ctx := c.Request.Context()
	tasks, err := s.repo.ListTasks(ctx, task.TaskFilter{})
	if err != nil {
		s.handleError(c, err)
		return
	}
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		s.handleError(c, err)
		return
	}

	now := s.now()
	c.JSON(http.StatusOK, InsightsResponse{
		Insights:    insights.Generate(tasks, projects, now),
		GeneratedAt: formatTimestamp(now),
	})
}
