package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/llm"
	"github.com/javiermolinar/ganttline/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		narrate bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize a week",
		Long: `Summarize the tasks touching one Monday to Sunday week: what starts,
what is due, what is done and what is late.

Example:
  ganttline week
  ganttline week --date=next-week
  ganttline week --narrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now := a.now()
			opts := summary.BuildWeekSummaryOptions{Now: now}
			if date != "" {
				d, err := dateutil.ParseRelativeDate(date, now)
				if err != nil {
					return err
				}
				opts.WeekStart = d
			}
			if narrate {
				client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
				opts.Narrator = client
			}

			s, err := summary.BuildWeekSummary(cmd.Context(), a.repo, opts)
			if err != nil {
				return err
			}
			printWeekSummary(cmd, s, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to summarize (default: today)")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Add a narrative from the configured LLM")
	return cmd
}

func printWeekSummary(cmd *cobra.Command, s *summary.WeekSummary, now time.Time) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatHeader(fmt.Sprintf("Week %s → %s", dateutil.FormatDate(s.Start), dateutil.FormatDate(s.End))))

	if len(s.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks this week.")
		return
	}

	st := s.Stats
	fmt.Fprintf(out, "%d active · %d starting · %d due · %d completed · %d overdue · %d%% average progress\n\n",
		st.Active, st.Starting, st.Due, st.Completed, st.Overdue, st.Progress)
	for _, t := range s.Tasks {
		PrintTaskRow(out, t, now, 30)
	}

	if s.Narrative != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, formatHeader("Resumo"))
		PrintInsightWrapped(out, s.Narrative, min(termWidth(), 100))
	}
}
