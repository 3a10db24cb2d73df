package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start       string
		end         string
		project     string
		assignee    string
		priority    string
		status      string
		progress    int
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new task",
		Long: `Add a new task to the chart.

Dates accept YYYY-MM-DD, today, tomorrow, yesterday, next-week, weekday
names (monday, next-friday) and offsets (+3d, -1w).

Example:
  ganttline add "Write documentation" --start=2025-06-02 --end=+2w --priority=high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			t, err := task.New(args[0], start, end, a.now())
			if err != nil {
				return err
			}
			if t.Status, err = task.ParseStatus(status); err != nil {
				return err
			}
			if t.Priority, err = task.ParsePriority(priority); err != nil {
				return err
			}
			t.Progress = progress
			t.Description = description
			t.AssigneeID = assignee

			ctx := cmd.Context()
			if project != "" {
				p, err := a.resolveProject(ctx, project)
				if err != nil {
					return err
				}
				t.ProjectID = p.ID
			}

			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s %s → %s (%s)\n",
				shortID(t.ID),
				t.Name,
				dateutil.FormatDate(t.StartDate),
				dateutil.FormatDate(t.EndDate),
				FormatDuration(t.Duration()),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (default: today)")
	cmd.Flags().StringVar(&end, "end", "", "End date (default: start date)")
	cmd.Flags().StringVar(&project, "project", "", "Project ID, ID prefix or name")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Who is responsible for the task")
	cmd.Flags().StringVar(&priority, "priority", string(task.PriorityMedium), "Priority: low, medium, high")
	cmd.Flags().StringVar(&status, "status", string(task.StatusTodo), "Status: todo, in-progress, review, completed")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage (0-100)")
	cmd.Flags().StringVar(&description, "desc", "", "Longer description")

	return cmd
}
