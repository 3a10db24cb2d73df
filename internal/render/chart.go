// Package render draws Gantt layouts as terminal text.
package render

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/task"
	"github.com/javiermolinar/ganttline/internal/tui/theme"
)

const (
	minGridWidth = 10

	glyphBar     = '█'
	glyphDone    = '▒'
	glyphToday   = '│'
	glyphWeekend = '·'
)

// Chart draws a gantt.Layout. The zero value renders a plain chart; set
// Palette for colors.
type Chart struct {
	Width      int // total width, label column included
	LabelWidth int
	Palette    *theme.Palette
	Projects   map[string]*task.Project // bar colors by project ID
	Now        time.Time
	Selected   int // highlighted row, -1 for none
}

// Render returns the chart as a single string.
func (c Chart) Render(l gantt.Layout) string {
	return strings.Join(c.Lines(l), "\n")
}

// Lines returns the chart rows: two header lines followed by one line per task.
func (c Chart) Lines(l gantt.Layout) []string {
	gridW := c.gridWidth()
	labels, sublabels := c.header(l, gridW)

	lines := make([]string, 0, len(l.Rows)+2)
	lines = append(lines, labels, sublabels)
	for i, row := range l.Rows {
		lines = append(lines, c.row(l, i, row, gridW))
	}
	return lines
}

// GridWidth returns the number of timeline columns the chart uses.
func (c Chart) GridWidth() int {
	return c.gridWidth()
}

func (c Chart) gridWidth() int {
	return max(c.Width-c.labelWidth()-1, minGridWidth)
}

func (c Chart) labelWidth() int {
	return max(c.LabelWidth, 4)
}

// column maps a percentage onto the grid.
func column(p float64, gridW int) int {
	return min(max(int(math.Round(p/100*float64(gridW))), 0), gridW)
}

// barColumns returns the [start, end) grid columns covered by b. A visible
// bar always covers at least one column.
func barColumns(b gantt.Bar, gridW int) (int, int) {
	if !b.Visible {
		return 0, 0
	}
	start := column(b.Left, gridW)
	end := column(b.Right(), gridW)
	if end <= start {
		start = min(start, gridW-1)
		end = start + 1
	}
	return start, end
}

func (c Chart) header(l gantt.Layout, gridW int) (string, string) {
	muted := c.style(func(p *theme.Palette) lipgloss.Style { return lipgloss.NewStyle().Foreground(p.FgMuted) })
	normal := c.style(func(p *theme.Palette) lipgloss.Style { return lipgloss.NewStyle().Foreground(p.Fg) })
	current := c.style(func(p *theme.Palette) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	})

	var top, bottom strings.Builder
	top.WriteString(c.style(accentBold).Render(pad(string(l.Mode), c.labelWidth())))
	top.WriteByte(' ')
	bottom.WriteString(muted.Render(pad(dateutil.FormatDate(l.Window.Start), c.labelWidth())))
	bottom.WriteByte(' ')

	cursor := 0
	for _, item := range l.Timeline {
		start := column(gantt.Offset(item.Date, l.Window, l.Mode), gridW)
		end := column(gantt.Offset(item.End, l.Window, l.Mode), gridW)
		if end <= start || end <= cursor {
			continue
		}
		start = max(start, cursor)
		if start > cursor {
			gap := strings.Repeat(" ", start-cursor)
			top.WriteString(gap)
			bottom.WriteString(gap)
		}

		style := normal
		if item.IsCurrentPeriod {
			style = current
		}
		top.WriteString(style.Render(pad(item.Label, end-start)))
		bottom.WriteString(muted.Render(pad(item.SubLabel, end-start)))
		cursor = end
	}
	if cursor < gridW {
		gap := strings.Repeat(" ", gridW-cursor)
		top.WriteString(gap)
		bottom.WriteString(gap)
	}
	return top.String(), bottom.String()
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellWeekend
	cellToday
	cellBar
)

func (c Chart) row(l gantt.Layout, i int, row gantt.Row, gridW int) string {
	t := row.Task
	overdue := !c.Now.IsZero() && t.IsOverdue(c.Now)

	kinds := make([]cellKind, gridW)
	if l.Mode == gantt.ModeDay {
		for _, item := range l.Timeline {
			if !item.IsWeekend {
				continue
			}
			start := column(gantt.Offset(item.Date, l.Window, l.Mode), gridW)
			end := column(gantt.Offset(item.End, l.Window, l.Mode), gridW)
			for col := start; col < end; col++ {
				kinds[col] = cellWeekend
			}
		}
	}
	if l.TodayVisible {
		kinds[min(column(l.Today, gridW), gridW-1)] = cellToday
	}
	barStart, barEnd := barColumns(row.Bar, gridW)
	for col := barStart; col < barEnd; col++ {
		kinds[col] = cellBar
	}

	barGlyph := glyphBar
	if t.IsCompleted() {
		barGlyph = glyphDone
	}
	styles := map[cellKind]lipgloss.Style{
		cellEmpty: lipgloss.NewStyle(),
		cellWeekend: c.style(func(p *theme.Palette) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.WeekendBg)
		}),
		cellToday: c.style(func(p *theme.Palette) lipgloss.Style { return lipgloss.NewStyle().Foreground(p.Today) }),
		cellBar:   c.barStyle(t, overdue),
	}
	glyphs := map[cellKind]rune{
		cellEmpty:   ' ',
		cellWeekend: c.weekendGlyph(),
		cellToday:   glyphToday,
		cellBar:     barGlyph,
	}

	var b strings.Builder
	b.WriteString(c.labelStyle(t, overdue, i == c.Selected).Render(pad(t.Name, c.labelWidth())))
	b.WriteByte(' ')
	for start := 0; start < gridW; {
		end := start + 1
		for end < gridW && kinds[end] == kinds[start] {
			end++
		}
		run := strings.Repeat(string(glyphs[kinds[start]]), end-start)
		b.WriteString(styles[kinds[start]].Render(run))
		start = end
	}
	return b.String()
}

func (c Chart) weekendGlyph() rune {
	if c.Palette != nil {
		return ' '
	}
	return glyphWeekend
}

func (c Chart) barStyle(t *task.Task, overdue bool) lipgloss.Style {
	return c.style(func(p *theme.Palette) lipgloss.Style {
		switch {
		case t.IsCompleted():
			return lipgloss.NewStyle().Foreground(p.DoneBg)
		case overdue:
			return lipgloss.NewStyle().Foreground(p.Overdue)
		}
		if proj, ok := c.Projects[t.ProjectID]; ok && proj != nil {
			return lipgloss.NewStyle().Foreground(p.ProjectBar(proj.Color))
		}
		return lipgloss.NewStyle().Foreground(p.BarBg)
	})
}

func (c Chart) labelStyle(t *task.Task, overdue, selected bool) lipgloss.Style {
	return c.style(func(p *theme.Palette) lipgloss.Style {
		s := lipgloss.NewStyle().Foreground(p.Fg)
		switch {
		case t.IsCompleted():
			s = s.Foreground(p.FgMuted)
		case overdue:
			s = s.Foreground(p.Overdue)
		}
		if selected {
			s = s.Background(p.BgSelection).Bold(true)
		}
		return s
	})
}

func accentBold(p *theme.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}

// style builds a palette-dependent style, or an empty one for plain charts.
func (c Chart) style(fn func(*theme.Palette) lipgloss.Style) lipgloss.Style {
	if c.Palette == nil {
		return lipgloss.NewStyle()
	}
	return fn(c.Palette)
}

// pad truncates s to width cells and right-pads it with spaces.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		if width == 1 {
			return ansi.Truncate(s, 1, "")
		}
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}
