package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/render"
	"github.com/javiermolinar/ganttline/internal/server"
	"github.com/javiermolinar/ganttline/internal/task"
	"github.com/javiermolinar/ganttline/internal/tui/theme"
)

// chartFlags are shared by the commands that compute a layout.
type chartFlags struct {
	mode   string
	locale string
	today  string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Zoom: day, week or month (default from config)")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Label locale: pt-BR or en (default from config)")
	cmd.Flags().StringVar(&f.today, "today", "", "Pretend today is this date (YYYY-MM-DD)")
}

// resolve turns the flags into a mode, locale and clock, falling back to config.
func (f *chartFlags) resolve(a *App) (gantt.Mode, gantt.Locale, time.Time, error) {
	mode := a.config.Mode()
	if f.mode != "" {
		m, err := gantt.ParseMode(f.mode)
		if err != nil {
			return "", "", time.Time{}, err
		}
		mode = m
	}
	loc := a.config.Locale()
	if f.locale != "" {
		l, err := gantt.ParseLocale(f.locale)
		if err != nil {
			return "", "", time.Time{}, err
		}
		loc = l
	}
	now := a.now()
	if f.today != "" {
		d, err := dateutil.ParseDate(f.today)
		if err != nil {
			return "", "", time.Time{}, fmt.Errorf("--today: %w", err)
		}
		now = d
	}
	return mode, loc, now, nil
}

func (a *App) ganttCmd() *cobra.Command {
	var (
		flags   chartFlags
		project string
		width   int
		noColor bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Print the Gantt chart",
		Long: `Print a static Gantt chart of all live tasks, or the computed layout as JSON.

Example:
  ganttline gantt --mode=day
  ganttline gantt --project=Website --no-color --width=100
  ganttline gantt --json --today=2025-06-08`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			mode, loc, now, err := flags.resolve(a)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			tasks, projects, err := a.loadChartData(ctx, project)
			if err != nil {
				return err
			}

			l := gantt.Compute(tasks, mode, now, gantt.Options{Locale: loc})
			a.logger.Debug("layout computed", "mode", l.Mode, "tasks", len(l.Rows), "days", l.Window.Days)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(server.ToGanttResponse(l))
			}

			if width <= 0 {
				width = termWidth()
			}
			chart := render.Chart{
				Width:      width,
				LabelWidth: a.config.Gantt.LabelWidth,
				Projects:   projects,
				Now:        now,
				Selected:   -1,
			}
			if noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			} else {
				th, err := theme.Load(a.config.UI.Theme)
				if err != nil {
					return fmt.Errorf("loading theme: %w", err)
				}
				chart.Palette = theme.NewPalette(th)
			}

			printChart(out, chart, l)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project (ID, prefix or name)")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Plain output without colors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")

	return cmd
}

func (a *App) timelineCmd() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the timeline header buckets",
		Long: `Print the header buckets the chart would use for the current tasks:
one line per day, week or month with its label and date span.

Example:
  ganttline timeline --mode=week --locale=en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			mode, loc, now, err := flags.resolve(a)
			if err != nil {
				return err
			}

			tasks, err := a.repo.ListTasks(cmd.Context(), task.TaskFilter{})
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			w := gantt.CalculateDateRange(tasks, now)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s → %s (%d days, %d %s units)\n",
				dateutil.FormatDate(w.Start),
				dateutil.FormatDate(w.End),
				w.Days,
				gantt.CalculateTimelineUnits(w.Start, w.Days, mode),
				mode,
			)
			for _, item := range gantt.GenerateTimeline(w.Start, w.Days, mode, now, loc) {
				marker := " "
				if item.IsCurrentPeriod {
					marker = "*"
				}
				line := fmt.Sprintf("%s %-10s %-8s %s → %s",
					marker,
					item.Label,
					item.SubLabel,
					dateutil.FormatDate(item.Date),
					dateutil.FormatDate(item.End.AddDate(0, 0, -1)),
				)
				if item.IsWeekend {
					line = formatMuted(line)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// loadChartData returns the live tasks to chart, optionally limited to one
// project, plus all projects keyed by ID.
func (a *App) loadChartData(ctx context.Context, projectRef string) ([]*task.Task, map[string]*task.Project, error) {
	filter := task.TaskFilter{}
	if projectRef != "" {
		p, err := a.resolveProject(ctx, projectRef)
		if err != nil {
			return nil, nil, err
		}
		filter.ProjectID = p.ID
	}

	tasks, err := a.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing tasks: %w", err)
	}
	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing projects: %w", err)
	}

	byID := make(map[string]*task.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return tasks, byID, nil
}

func printChart(w io.Writer, chart render.Chart, l gantt.Layout) {
	if len(l.Rows) == 0 {
		fmt.Fprintln(w, "No tasks to chart. Add one with: ganttline add NAME --start=today --end=+1w")
		return
	}
	fmt.Fprintln(w, chart.Render(l))
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatMuted(fmt.Sprintf("%d tasks · %s → %s · %s",
		len(l.Rows),
		dateutil.FormatDate(l.Window.Start),
		dateutil.FormatDate(l.Window.End),
		l.Mode,
	)))
}
