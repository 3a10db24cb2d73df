package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(a.projectAddCmd())
	cmd.AddCommand(a.projectListCmd())
	return cmd
}

func (a *App) projectAddCmd() *cobra.Command {
	var (
		color    string
		start    string
		end      string
		status   string
		progress int
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new project",
		Long: `Add a new project. Tasks assigned to it take its color in the chart.

Example:
  ganttline project add "Website" --color=#10b981 --start=2025-06-01 --end=2025-08-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p, err := task.NewProject(args[0], color, start, end, a.now())
			if err != nil {
				return err
			}
			p.Status = task.ProjectStatus(status)
			if !p.Status.Valid() {
				return fmt.Errorf("invalid project status %q", status)
			}
			if progress < 0 || progress > 100 {
				return task.ErrInvalidProgress
			}
			p.Progress = progress

			if err := a.repo.CreateProject(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s %s → %s\n",
				shortID(p.ID), p.Name, dateutil.FormatDate(p.StartDate), dateutil.FormatDate(p.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", task.DefaultProjectColor, "Bar color (#RRGGBB)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (default: today)")
	cmd.Flags().StringVar(&end, "end", "", "End date (default: start date)")
	cmd.Flags().StringVar(&status, "status", string(task.ProjectPlanning), "Status: planning, active, on-hold, completed")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage (0-100)")

	return cmd
}

func (a *App) projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			projects, err := a.repo.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet.")
				return nil
			}
			for _, p := range projects {
				fmt.Fprintf(out, "  %s  %s → %s  %-10s %s %3d%%  %s\n",
					shortID(p.ID),
					dateutil.FormatDate(p.StartDate),
					dateutil.FormatDate(p.EndDate),
					p.Status,
					ProgressBar(p.Progress, 10),
					p.Progress,
					p.Name,
				)
			}
			return nil
		},
	}
}
