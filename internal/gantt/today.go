package gantt

import "time"

// TodayPosition returns where the today marker sits on w, in percent. It uses
// the same offset as CalculateBarPosition so the marker lines up with a bar
// starting today. The result is not clamped; see MarkerVisible.
func TodayPosition(w Window, mode Mode, now time.Time) float64 {
	return Offset(now, w, mode)
}

// MarkerVisible reports whether a marker at position p falls on the chart.
func MarkerVisible(p float64) bool {
	return p >= 0 && p <= 100
}
