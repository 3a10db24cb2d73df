package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/llm"
	"github.com/javiermolinar/ganttline/internal/task"
)

func (a *App) insightsCmd() *cobra.Command {
	var narrate bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Analyze the schedule",
		Long: `Run the schedule checks over all live tasks and projects: overdue work,
deadlines in the next days, overloaded people, projects behind schedule
and what went well.

With --narrate the findings are summarized by the configured LLM.

Example:
  ganttline insights
  ganttline insights --narrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			tasks, err := a.repo.ListTasks(ctx, task.TaskFilter{})
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			projects, err := a.repo.ListProjects(ctx)
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			found := insights.Generate(tasks, projects, a.now())
			out := cmd.OutOrStdout()
			width := min(termWidth(), 100)
			for i, in := range found {
				if i > 0 {
					fmt.Fprintln(out)
				}
				PrintInsight(out, in, width)
			}

			if !narrate {
				return nil
			}

			client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			a.logger.Debug("narrating insights", "provider", a.config.LLM.Provider, "model", a.config.LLM.Model, "insights", len(found))

			text, err := insights.Narrate(ctx, client, found)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatHeader("Resumo"))
			PrintInsightWrapped(out, text, width)
			return nil
		},
	}

	cmd.Flags().BoolVar(&narrate, "narrate", false, "Summarize the findings with the configured LLM")
	return cmd
}
