package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/ganttline/internal/task"
)

// ErrAmbiguousRef is returned when a short reference matches several records.
var ErrAmbiguousRef = errors.New("reference matches more than one record")

// resolveTaskID expands a full or prefixed task ID. Deleted tasks are
// included so they can be restored.
func (a *App) resolveTaskID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", task.ErrTaskNotFound
	}
	if t, err := a.repo.GetTask(ctx, ref); err == nil {
		return t.ID, nil
	} else if !errors.Is(err, task.ErrTaskNotFound) {
		return "", err
	}

	tasks, err := a.repo.ListTasks(ctx, task.TaskFilter{IncludeDeleted: true})
	if err != nil {
		return "", fmt.Errorf("listing tasks: %w", err)
	}
	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", task.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRef, ref)
	}
}

// resolveProject finds a project by ID, ID prefix or case-insensitive name.
func (a *App) resolveProject(ctx context.Context, ref string) (*task.Project, error) {
	ref = strings.TrimSpace(ref)
	if p, err := a.repo.GetProject(ctx, ref); err == nil {
		return p, nil
	} else if !errors.Is(err, task.ErrProjectNotFound) {
		return nil, err
	}

	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var matches []*task.Project
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) || (ref != "" && strings.HasPrefix(p.ID, ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", task.ErrProjectNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref)
	}
}
