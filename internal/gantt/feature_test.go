package gantt_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/task"
)

type layoutFeature struct {
	now      time.Time
	tasks    []*task.Task
	window   gantt.Window
	bar      gantt.Bar
	timeline []gantt.TimelineItem
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "gantt-layout",
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func initializeScenario(sc *godog.ScenarioContext) {
	f := &layoutFeature{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*f = layoutFeature{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)}
		return ctx, nil
	})

	sc.Step(`^today is "([^"]*)"$`, f.todayIs)
	sc.Step(`^a task "([^"]*)" from "([^"]*)" to "([^"]*)"$`, f.aTask)
	sc.Step(`^a (\d+) day window starting "([^"]*)"$`, f.aWindow)
	sc.Step(`^I compute the date range$`, f.computeRange)
	sc.Step(`^I place a task from "([^"]*)" to "([^"]*)" in (day|week|month) mode$`, f.placeTask)
	sc.Step(`^I generate the week timeline$`, f.generateWeekTimeline)

	sc.Step(`^there are (\d+) days between "([^"]*)" and "([^"]*)"$`, daysBetween)
	sc.Step(`^"([^"]*)" is in week (\d+)$`, isInWeek)
	sc.Step(`^"([^"]*)" is a weekend day$`, func(s string) error { return weekend(s, true) })
	sc.Step(`^"([^"]*)" is not a weekend day$`, func(s string) error { return weekend(s, false) })

	sc.Step(`^the window spans (\d+) days$`, f.windowSpans)
	sc.Step(`^the window spans at least (\d+) days$`, f.windowSpansAtLeast)
	sc.Step(`^the window starts on "([^"]*)"$`, f.windowStartsOn)
	sc.Step(`^the window starts before "([^"]*)"$`, f.windowStartsBefore)
	sc.Step(`^the window ends after "([^"]*)"$`, f.windowEndsAfter)

	sc.Step(`^the bar starts after the left edge$`, f.barStartsAfterLeftEdge)
	sc.Step(`^the bar starts at the left edge$`, f.barStartsAtLeftEdge)
	sc.Step(`^the bar has a width$`, f.barHasWidth)
	sc.Step(`^the bar fits inside the chart$`, f.barFits)

	sc.Step(`^there are (\d+) header buckets$`, f.headerBuckets)
	sc.Step(`^header (\d+) is labelled "([^"]*)"$`, f.headerLabelled)
	sc.Step(`^header (\d+) is the current period$`, f.headerCurrent)
}

func (f *layoutFeature) todayIs(s string) error {
	d, err := dateutil.ParseDate(s)
	f.now = d
	return err
}

func (f *layoutFeature) aTask(name, start, end string) error {
	t, err := task.New(name, start, end, f.now)
	if err != nil {
		return err
	}
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *layoutFeature) aWindow(days int, start string) error {
	d, err := dateutil.ParseDate(start)
	if err != nil {
		return err
	}
	f.window = gantt.Window{Start: d, End: d.AddDate(0, 0, days), Days: days}
	return nil
}

func (f *layoutFeature) computeRange() error {
	f.window = gantt.CalculateDateRange(f.tasks, f.now)
	return nil
}

func (f *layoutFeature) placeTask(start, end, mode string) error {
	m, err := gantt.ParseMode(mode)
	if err != nil {
		return err
	}
	s, err := dateutil.ParseDate(start)
	if err != nil {
		return err
	}
	e, err := dateutil.ParseDate(end)
	if err != nil {
		return err
	}
	f.bar = gantt.CalculateBarPosition(s, e, f.window, m)
	return nil
}

func (f *layoutFeature) generateWeekTimeline() error {
	f.timeline = gantt.GenerateTimeline(f.window.Start, f.window.Days, gantt.ModeWeek, f.now, gantt.LocalePtBR)
	return nil
}

func daysBetween(want int, a, b string) error {
	da, err := dateutil.ParseDate(a)
	if err != nil {
		return err
	}
	db, err := dateutil.ParseDate(b)
	if err != nil {
		return err
	}
	if got := dateutil.DaysBetween(da, db); got != want {
		return fmt.Errorf("got %d days, want %d", got, want)
	}
	return nil
}

func isInWeek(s string, want int) error {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return err
	}
	if got := dateutil.WeekNumber(d); got != want {
		return fmt.Errorf("got week %d, want %d", got, want)
	}
	return nil
}

func weekend(s string, want bool) error {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return err
	}
	if got := dateutil.IsWeekend(d); got != want {
		return fmt.Errorf("IsWeekend(%s) = %v, want %v", s, got, want)
	}
	return nil
}

func (f *layoutFeature) windowSpans(days int) error {
	if f.window.Days != days {
		return fmt.Errorf("window spans %d days, want %d", f.window.Days, days)
	}
	return nil
}

func (f *layoutFeature) windowSpansAtLeast(days int) error {
	if f.window.Days < days {
		return fmt.Errorf("window spans %d days, want at least %d", f.window.Days, days)
	}
	return nil
}

func (f *layoutFeature) windowStartsOn(s string) error {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return err
	}
	if !f.window.Start.Equal(d) {
		return fmt.Errorf("window starts %s, want %s", dateutil.FormatDate(f.window.Start), s)
	}
	return nil
}

func (f *layoutFeature) windowStartsBefore(s string) error {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return err
	}
	if !f.window.Start.Before(d) {
		return fmt.Errorf("window starts %s, not before %s", dateutil.FormatDate(f.window.Start), s)
	}
	return nil
}

func (f *layoutFeature) windowEndsAfter(s string) error {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return err
	}
	if !f.window.End.After(d) {
		return fmt.Errorf("window ends %s, not after %s", dateutil.FormatDate(f.window.End), s)
	}
	return nil
}

func (f *layoutFeature) barStartsAfterLeftEdge() error {
	if f.bar.Left <= 0 {
		return fmt.Errorf("bar left is %.2f", f.bar.Left)
	}
	return nil
}

func (f *layoutFeature) barStartsAtLeftEdge() error {
	if f.bar.Left != 0 {
		return fmt.Errorf("bar left is %.2f, want 0", f.bar.Left)
	}
	return nil
}

func (f *layoutFeature) barHasWidth() error {
	if f.bar.Width <= 0 {
		return fmt.Errorf("bar width is %.2f", f.bar.Width)
	}
	return nil
}

func (f *layoutFeature) barFits() error {
	if f.bar.Left < 0 || f.bar.Left+f.bar.Width > 100 {
		return fmt.Errorf("bar %+v does not fit", f.bar)
	}
	return nil
}

func (f *layoutFeature) headerBuckets(n int) error {
	if len(f.timeline) != n {
		return fmt.Errorf("got %d buckets, want %d", len(f.timeline), n)
	}
	return nil
}

func (f *layoutFeature) headerLabelled(i int, label string) error {
	if i < 1 || i > len(f.timeline) {
		return fmt.Errorf("no header %d", i)
	}
	if got := f.timeline[i-1].Label; got != label {
		return fmt.Errorf("header %d is %q, want %q", i, got, label)
	}
	return nil
}

func (f *layoutFeature) headerCurrent(i int) error {
	if i < 1 || i > len(f.timeline) {
		return fmt.Errorf("no header %d", i)
	}
	if !f.timeline[i-1].IsCurrentPeriod {
		return fmt.Errorf("header %d is not the current period", i)
	}
	return nil
}
