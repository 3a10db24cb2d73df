// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ganttline/internal/task"
)

// DataLoadedMsg is sent when tasks and projects are loaded.
type DataLoadedMsg struct {
	Tasks    []*task.Task
	Projects []*task.Project
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// LoadData loads all live tasks and projects.
func LoadData(ctx context.Context, repo task.Repository) tea.Cmd {
	return func() tea.Msg {
		tasks, err := repo.ListTasks(ctx, task.TaskFilter{})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		projects, err := repo.ListProjects(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading projects: %w", err)}
		}
		return DataLoadedMsg{Tasks: tasks, Projects: projects}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsg{Msg: "Chart copied to clipboard"}
	}
}

// ClearStatusAfter clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
