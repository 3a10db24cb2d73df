// Package summary provides shared week summary utilities.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/llm"
	"github.com/javiermolinar/ganttline/internal/task"
)

// WeekSummary holds aggregated week data and an optional narrative.
type WeekSummary struct {
	Start     time.Time
	End       time.Time
	Tasks     []*task.Task
	Stats     WeekStats
	Insights  []insights.Insight
	Narrative string
}

// WeekStats counts the tasks touching a Monday to Sunday week.
type WeekStats struct {
	Active    int // any overlap with the week
	Starting  int
	Due       int
	Completed int
	Overdue   int
	Progress  int // average progress of active tasks
}

// BuildWeekSummaryOptions configures the repository-backed summary builder.
type BuildWeekSummaryOptions struct {
	WeekStart time.Time // any day of the week; zero means the week of Now
	Now       time.Time

	// Narrator, when set, turns the week's insights into a short paragraph.
	Narrator llm.Client
}

// SummarizeWeek builds week summary data from tasks and a reference date.
// Tasks outside the week and deleted tasks are ignored.
func SummarizeWeek(weekStart time.Time, tasks []*task.Task, now time.Time) *WeekSummary {
	start, end := dateutil.WeekRange(weekStart)

	var inWeek []*task.Task
	var stats WeekStats
	for _, t := range tasks {
		if t == nil || t.IsDeleted() {
			continue
		}
		tStart, tEnd := t.Span()
		if tStart.After(end) || tEnd.Before(start) {
			continue
		}
		inWeek = append(inWeek, t)

		stats.Active++
		if !tStart.Before(start) {
			stats.Starting++
		}
		if !tEnd.After(end) {
			stats.Due++
		}
		if t.IsCompleted() {
			stats.Completed++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	stats.Progress = task.CalculateProgress(inWeek)

	return &WeekSummary{
		Start:    start,
		End:      end,
		Tasks:    inWeek,
		Stats:    stats,
		Insights: insights.Generate(inWeek, nil, now),
	}
}

// BuildWeekSummary loads tasks for the requested week and optionally adds a narrative.
func BuildWeekSummary(ctx context.Context, repo task.Repository, opts BuildWeekSummaryOptions) (*WeekSummary, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weekStart := opts.WeekStart
	if weekStart.IsZero() {
		weekStart = now
	}

	start, end := dateutil.WeekRange(weekStart)
	tasks, err := repo.ListTasksInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	summary := SummarizeWeek(start, tasks, now)

	if opts.Narrator != nil && len(summary.Tasks) > 0 {
		text, err := insights.Narrate(ctx, opts.Narrator, summary.Insights)
		if err != nil && !errors.Is(err, insights.ErrNothingToNarrate) {
			return nil, fmt.Errorf("narrating week: %w", err)
		}
		summary.Narrative = text
	}

	return summary, nil
}
