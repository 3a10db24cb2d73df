// Package dateutil provides calendar-date arithmetic and parsing for Gantt layouts.
//
// All helpers work on local calendar fields (year, month, day) of the value
// they receive; time-of-day is only ever discarded, never interpreted.
package dateutil

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for storage, flags and JSON.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

const day = 24 * time.Hour

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated, inclusive calendar range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses and validates a start/end pair relative to now.
// An empty end defaults to the start date.
func NewDateRange(startDate, endDate string, now time.Time) (*DateRange, error) {
	start, err := ParseRelativeDate(startDate, now)
	if err != nil {
		return nil, err
	}

	end := start
	if strings.TrimSpace(endDate) != "" {
		end, err = ParseRelativeDate(endDate, now)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns the inclusive number of calendar days in the range.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// ParseDate parses a date string in YYYY-MM-DD format, in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday", "next-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday"
//   - Offsets: "+3d", "-2d", "+1w"
//
// All inputs are case-insensitive. Past dates are allowed: Gantt tasks may
// have started long ago.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := StartOfDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if strings.HasPrefix(input, "next-") {
		if targetDay, ok := weekdayMap[strings.TrimPrefix(input, "next-")]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	if offset, ok := parseOffset(input); ok {
		return today.AddDate(0, 0, offset), nil
	}

	return ParseDate(input)
}

// parseOffset parses "+Nd", "-Nd", "+Nw" and "-Nw".
func parseOffset(s string) (int, bool) {
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	switch unit {
	case 'd':
	case 'w':
		n *= 7
	default:
		return 0, false
	}
	if s[0] == '-' {
		n = -n
	}
	return n, true
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// StartOfDay returns t with time set to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the ISO week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns the first day of t's month, at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = StartOfWeek(t)
	return monday, monday.AddDate(0, 0, 6)
}

// DaysBetween returns the signed number of days from a to b, rounded up.
//
// The difference is taken on wall-clock fields, so a DST shift between a
// and b never turns a calendar day into 23 or 25 hours.
func DaysBetween(a, b time.Time) int {
	diff := wallClock(b).Sub(wallClock(a))
	return int(math.Ceil(diff.Hours() / 24))
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// WeekNumber returns the ISO-8601 week number (1-53) of t.
//
// The date is shifted to the Thursday of its week; the week number is the
// count of weeks between that Thursday and the first Thursday of its year.
func WeekNumber(t time.Time) int {
	d := wallClock(StartOfDay(t))
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := d.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(thursday.Sub(yearStart)/day)/7 + 1
}

// MonthIndex returns a monotonically increasing month counter (year*12 + month-1).
func MonthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SameDay reports whether a and b share the same calendar date.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}
