package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		project  string
		status   string
		assignee string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks ordered by start date.

Deleted tasks are hidden unless --all is given.`,
		Example: `  ganttline list
  ganttline list --project=Website --status=in-progress
  ganttline list --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			filter := task.TaskFilter{AssigneeID: assignee, IncludeDeleted: all}
			if project != "" {
				p, err := a.resolveProject(ctx, project)
				if err != nil {
					return err
				}
				filter.ProjectID = p.ID
			}
			if status != "" {
				st, err := task.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = st
			}

			tasks, err := a.repo.ListTasks(ctx, filter)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}

			now := a.now()
			nameWidth := max(termWidth()-60, 16)
			for _, t := range tasks {
				PrintTaskRow(out, t, now, nameWidth)
			}
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d tasks · %d%% average progress", len(tasks), task.CalculateProgress(tasks))))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project (ID, prefix or name)")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only tasks assigned to this person")
	cmd.Flags().BoolVar(&all, "all", false, "Include deleted tasks")

	return cmd
}
