// Package server exposes projects, tasks and Gantt layouts over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/task"
)

const shutdownTimeout = 5 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Mode   gantt.Mode
	Locale gantt.Locale
	Logger *slog.Logger
	Now    func() time.Time
}

// Server serves the JSON API.
type Server struct {
	repo   task.Repository
	mode   gantt.Mode
	locale gantt.Locale
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Server backed by repo.
func New(repo task.Repository, opts Options) *Server {
	s := &Server{
		repo:   repo,
		mode:   opts.Mode,
		locale: opts.Locale,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if !s.mode.Valid() {
		s.mode = gantt.ModeWeek
	}
	if s.locale == "" {
		s.locale = gantt.DefaultLocale
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", s.health)

	api := engine.Group("/api")
	{
		projects := api.Group("/projects")
		projects.GET("", s.listProjects)
		projects.POST("", s.createProject)

		tasks := api.Group("/tasks")
		tasks.GET("", s.listTasks)
		tasks.POST("", s.createTask)
		tasks.GET("/:id", s.getTask)
		tasks.PATCH("/:id", s.updateTask)
		tasks.DELETE("/:id", s.deleteTask)

		api.GET("/gantt", s.getGantt)
		api.GET("/insights", s.getInsights)
	}

	return engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
