// Package gantt computes Gantt chart geometry: the visible date window for a
// set of tasks, timeline header buckets, bar positions and the today marker.
//
// Every function is pure. The current time is always passed in explicitly,
// so identical inputs produce identical layouts and results can be memoized
// by callers.
package gantt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
)

// ErrInvalidMode is returned by ParseMode for unknown zoom modes.
var ErrInvalidMode = errors.New("mode must be one of day, week, month")

// Mode is the zoom granularity of the timeline.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// Modes lists the zoom modes from finest to coarsest.
var Modes = []Mode{ModeDay, ModeWeek, ModeMonth}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w, got %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Valid returns true if m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth:
		return true
	default:
		return false
	}
}

// Next returns the next coarser mode, wrapping from month back to day.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeDay
}

func (m Mode) String() string {
	return string(m)
}

// minVisibleWidth keeps short tasks clickable at coarse zoom levels.
const minVisibleWidth = 2.0

// monthDays is the fixed month length used for sub-month positioning.
const monthDays = 30.0

// scale expresses dates in the units of one zoom mode.
type scale interface {
	// units is the number of grid units the window spans.
	units(w Window) float64
	// offset is the position of d relative to the window start, in units.
	offset(w Window, d time.Time) float64
	// duration is the inclusive length of [start, end], in units.
	duration(start, end time.Time) float64
	// minWidth is the smallest bar width in percent.
	minWidth() float64
}

func scaleFor(m Mode) scale {
	switch m {
	case ModeWeek:
		return weekScale{}
	case ModeMonth:
		return monthScale{}
	default:
		return dayScale{}
	}
}

// spanDays is the inclusive day count of [start, end], never below one day.
func spanDays(start, end time.Time) float64 {
	days := dateutil.DaysBetween(dateutil.StartOfDay(start), dateutil.StartOfDay(end)) + 1
	return float64(max(days, 1))
}

type dayScale struct{}

func (dayScale) units(w Window) float64 {
	return float64(w.Days)
}

func (dayScale) offset(w Window, d time.Time) float64 {
	return float64(dateutil.DaysBetween(w.Start, dateutil.StartOfDay(d)))
}

func (dayScale) duration(start, end time.Time) float64 {
	return spanDays(start, end)
}

func (dayScale) minWidth() float64 { return 0 }

type weekScale struct{}

func (weekScale) units(w Window) float64 {
	return math.Ceil(float64(w.Days) / 7)
}

func (weekScale) offset(w Window, d time.Time) float64 {
	return float64(dateutil.DaysBetween(w.Start, dateutil.StartOfDay(d))) / 7
}

func (weekScale) duration(start, end time.Time) float64 {
	return spanDays(start, end) / 7
}

func (weekScale) minWidth() float64 { return minVisibleWidth }

type monthScale struct{}

func (monthScale) units(w Window) float64 {
	return float64(CalculateTimelineUnits(w.Start, w.Days, ModeMonth))
}

// offset is measured from the window start itself, not the first of its
// month, so a task starting before a mid-month window is clipped at zero.
func (monthScale) offset(w Window, d time.Time) float64 {
	return monthPosition(d) - monthPosition(w.Start)
}

func (monthScale) duration(start, end time.Time) float64 {
	return max(monthPosition(end)-monthPosition(start)+1/monthDays, 1/monthDays)
}

func (monthScale) minWidth() float64 { return minVisibleWidth }

// monthPosition places d on a continuous month axis, treating every month as
// 30 days long for the within-month fraction.
func monthPosition(d time.Time) float64 {
	return float64(dateutil.MonthIndex(d)) + float64(d.Day()-1)/monthDays
}
