package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) updateCmd() *cobra.Command {
	var (
		name     string
		start    string
		end      string
		status   string
		priority string
		progress int
		assignee string
		project  string
	)

	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update a task",
		Long: `Change fields of an existing task. Only the flags you pass are changed.
The task ID may be shortened to any unique prefix.

Example:
  ganttline update 1a2b3c4d --status=in-progress --progress=40 --end=+3d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			id, err := a.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}

			var update task.TaskUpdate
			flags := cmd.Flags()
			now := a.now()
			if flags.Changed("name") {
				update.Name = &name
			}
			for _, f := range []struct {
				flag  string
				value string
				out   **time.Time
			}{
				{"start", start, &update.StartDate},
				{"end", end, &update.EndDate},
			} {
				if !flags.Changed(f.flag) {
					continue
				}
				d, err := dateutil.ParseRelativeDate(f.value, now)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.flag, err)
				}
				*f.out = &d
			}
			if flags.Changed("status") {
				st, err := task.ParseStatus(status)
				if err != nil {
					return err
				}
				update.Status = &st
			}
			if flags.Changed("priority") {
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				update.Priority = &p
			}
			if flags.Changed("progress") {
				update.Progress = &progress
			}
			if flags.Changed("assignee") {
				update.AssigneeID = &assignee
			}
			if flags.Changed("project") {
				projectID := ""
				if project != "" {
					p, err := a.resolveProject(ctx, project)
					if err != nil {
						return err
					}
					projectID = p.ID
				}
				update.ProjectID = &projectID
			}

			t, err := a.repo.UpdateTask(ctx, id, update)
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", shortID(t.ID))
			PrintTaskRow(cmd.OutOrStdout(), t, now, 32)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "New start date")
	cmd.Flags().StringVar(&end, "end", "", "New end date")
	cmd.Flags().StringVar(&status, "status", "", "Status: todo, in-progress, review, completed")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium, high")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage (0-100)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee (empty to clear)")
	cmd.Flags().StringVar(&project, "project", "", "Project ID, prefix or name (empty to clear)")

	return cmd
}
