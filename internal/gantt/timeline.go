package gantt

import (
	"math"
	"strconv"
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
)

// TimelineItem is one header cell of the chart.
type TimelineItem struct {
	Date            time.Time // bucket start
	End             time.Time // bucket end, exclusive
	Label           string
	SubLabel        string
	IsCurrentPeriod bool
	IsWeekend       bool // day mode only
}

// GenerateTimeline returns the chronological header buckets covering
// [start, start+days]. Buckets never overlap and leave no gaps; the first
// and last bucket may extend past the window in week and month modes.
func GenerateTimeline(start time.Time, days int, mode Mode, now time.Time, loc Locale) []TimelineItem {
	start = dateutil.StartOfDay(start)
	switch mode {
	case ModeWeek:
		return weekTimeline(start, days, now, loc)
	case ModeMonth:
		return monthTimeline(start, days, now, loc)
	default:
		return dayTimeline(start, days, now)
	}
}

func dayTimeline(start time.Time, days int, now time.Time) []TimelineItem {
	items := make([]TimelineItem, 0, max(days, 0))
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		items = append(items, TimelineItem{
			Date:            d,
			End:             d.AddDate(0, 0, 1),
			Label:           strconv.Itoa(d.Day()),
			IsCurrentPeriod: dateutil.IsToday(d, now),
			IsWeekend:       dateutil.IsWeekend(d),
		})
	}
	return items
}

func weekTimeline(start time.Time, days int, now time.Time, loc Locale) []TimelineItem {
	limit := start.AddDate(0, 0, days)
	thisWeek := dateutil.StartOfWeek(now)

	var items []TimelineItem
	for bucket := dateutil.StartOfWeek(start); !bucket.After(limit); bucket = bucket.AddDate(0, 0, 7) {
		items = append(items, TimelineItem{
			Date:            bucket,
			End:             bucket.AddDate(0, 0, 7),
			Label:           loc.WeekLabel(dateutil.WeekNumber(bucket)),
			SubLabel:        loc.ShortMonth(bucket.Month()),
			IsCurrentPeriod: dateutil.SameDay(bucket, thisWeek),
		})
	}
	return items
}

func monthTimeline(start time.Time, days int, now time.Time, loc Locale) []TimelineItem {
	limit := start.AddDate(0, 0, days)

	var items []TimelineItem
	for bucket := dateutil.StartOfMonth(start); !bucket.After(limit); bucket = bucket.AddDate(0, 1, 0) {
		items = append(items, TimelineItem{
			Date:            bucket,
			End:             bucket.AddDate(0, 1, 0),
			Label:           loc.MonthName(bucket.Month()),
			SubLabel:        strconv.Itoa(bucket.Year()),
			IsCurrentPeriod: bucket.Year() == now.Year() && bucket.Month() == now.Month(),
		})
	}
	return items
}

// CalculateTimelineUnits returns how many grid units a window spans: days in
// day mode, ceil(days/7) in week mode, and the inclusive count of calendar
// months touched in month mode.
func CalculateTimelineUnits(start time.Time, days int, mode Mode) int {
	switch mode {
	case ModeWeek:
		return int(math.Ceil(float64(days) / 7))
	case ModeMonth:
		end := dateutil.StartOfDay(start).AddDate(0, 0, days)
		return dateutil.MonthIndex(end) - dateutil.MonthIndex(start) + 1
	default:
		return days
	}
}
