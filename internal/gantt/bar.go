package gantt

import (
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
)

// Bar is the horizontal geometry of one task bar, in percent of the window.
type Bar struct {
	Left    float64
	Width   float64
	Visible bool
}

// Right returns the right edge of the bar.
func (b Bar) Right() float64 {
	return b.Left + b.Width
}

// CalculateBarPosition places the task [taskStart, taskEnd] on window w.
// Both endpoints are inclusive, so a one-day task still has a width.
// A bar starting before the window is clipped at the left edge and a bar
// outside the window entirely has zero width and Visible set to false.
func CalculateBarPosition(taskStart, taskEnd time.Time, w Window, mode Mode) Bar {
	s := scaleFor(mode)
	units := s.units(w)
	if units <= 0 {
		return Bar{}
	}

	left := s.offset(w, taskStart) / units * 100
	width := s.duration(taskStart, taskEnd) / units * 100
	return clampBar(left, width, s.minWidth())
}

// Offset returns the unclamped position of d within w, in percent.
func Offset(d time.Time, w Window, mode Mode) float64 {
	s := scaleFor(mode)
	units := s.units(w)
	if units <= 0 {
		return 0
	}
	return s.offset(w, dateutil.StartOfDay(d)) / units * 100
}

// clampBar applies the bar policy shared by every mode: the minimum width
// first, then clipping to [0, 100].
func clampBar(left, width, minWidth float64) Bar {
	width = max(width, minWidth)
	if left < 0 {
		width += left
		left = 0
	}
	left = min(left, 100)
	width = min(max(width, 0), 100-left)
	return Bar{Left: left, Width: width, Visible: width > 0}
}
