package gantt

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/ganttline/internal/task"
)

// Row pairs a task with its bar.
type Row struct {
	Task *task.Task
	Bar  Bar
}

// Layout is everything a renderer needs to draw one chart.
type Layout struct {
	Mode         Mode
	Window       Window
	Units        int
	Timeline     []TimelineItem
	Rows         []Row
	Today        float64
	TodayVisible bool
}

// Options tweaks Compute.
type Options struct {
	Locale Locale
}

// Compute builds the full chart layout for tasks. Rows are ordered by start
// date, then end date, then name; nil tasks are skipped.
func Compute(tasks []*task.Task, mode Mode, now time.Time, opts Options) Layout {
	if !mode.Valid() {
		mode = ModeDay
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}

	w := CalculateDateRange(tasks, now)

	sorted := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			sorted = append(sorted, t)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *task.Task) int {
		return cmp.Or(
			a.StartDate.Compare(b.StartDate),
			a.EndDate.Compare(b.EndDate),
			cmp.Compare(a.Name, b.Name),
		)
	})

	rows := make([]Row, 0, len(sorted))
	for _, t := range sorted {
		rows = append(rows, Row{Task: t, Bar: CalculateBarPosition(t.StartDate, t.EndDate, w, mode)})
	}

	today := TodayPosition(w, mode, now)
	return Layout{
		Mode:         mode,
		Window:       w,
		Units:        CalculateTimelineUnits(w.Start, w.Days, mode),
		Timeline:     GenerateTimeline(w.Start, w.Days, mode, now, opts.Locale),
		Rows:         rows,
		Today:        today,
		TodayVisible: MarkerVisible(today),
	}
}
