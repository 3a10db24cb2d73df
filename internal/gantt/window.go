package gantt

import (
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

const (
	// DefaultWindowDays is the window length when there are no tasks.
	DefaultWindowDays = 30
	// MinWindowDays keeps a single short task from filling the whole chart.
	MinWindowDays = 14

	leadingPadDays  = 3
	trailingPadDays = 5
)

// Window is the padded date range a chart renders.
// End is always Start plus Days.
type Window struct {
	Start time.Time
	End   time.Time
	Days  int
}

// Contains reports whether d falls within [Start, End].
func (w Window) Contains(d time.Time) bool {
	d = dateutil.StartOfDay(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// CalculateDateRange returns the visible window covering every task date,
// padded by three days before and five days after. With no dated tasks it
// returns a 30-day window starting today.
func CalculateDateRange(tasks []*task.Task, now time.Time) Window {
	var minDate, maxDate time.Time
	found := false
	for _, t := range tasks {
		if t == nil {
			continue
		}
		for _, d := range [2]time.Time{t.StartDate, t.EndDate} {
			if d.IsZero() {
				continue
			}
			if !found || d.Before(minDate) {
				minDate = d
			}
			if !found || d.After(maxDate) {
				maxDate = d
			}
			found = true
		}
	}

	if !found {
		start := dateutil.StartOfDay(now)
		return Window{
			Start: start,
			End:   start.AddDate(0, 0, DefaultWindowDays),
			Days:  DefaultWindowDays,
		}
	}

	start := dateutil.StartOfDay(minDate).AddDate(0, 0, -leadingPadDays)
	end := dateutil.StartOfDay(maxDate).AddDate(0, 0, trailingPadDays)
	days := max(dateutil.DaysBetween(start, end), MinWindowDays)

	return Window{
		Start: start,
		End:   start.AddDate(0, 0, days),
		Days:  days,
	}
}
