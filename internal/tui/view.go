package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/render"
	"github.com/javiermolinar/ganttline/internal/tui/view"
)

const (
	titleHeight       = 1
	chartHeaderHeight = 2
	maxPanelWidth     = 72
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')

	switch {
	case m.loading && len(m.tasks) == 0:
		b.WriteString(view.PlaceBox(m.width, chartHeaderHeight+m.viewport.Height, lipgloss.Top,
			m.styles.MutedStyle.Render("Loading tasks..."), ""))
	case len(m.layout.Rows) == 0:
		b.WriteString(view.PlaceBox(m.width, chartHeaderHeight+m.viewport.Height, lipgloss.Top,
			m.styles.MutedStyle.Render("No tasks yet. Add one with: ganttline add NAME --start=today --end=+1w"), ""))
	default:
		lines := m.chart().Lines(m.layout)
		b.WriteString(strings.Join(lines[:chartHeaderHeight], "\n"))
		b.WriteByte('\n')
		b.WriteString(m.viewport.View())
	}
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())

	out := b.String()
	if m.showInsights {
		out = view.RenderOverlay(out, m.renderInsightsPanel(), m.width, m.height, m.styles.Bg)
	}
	return out
}

// chart returns the renderer for the current size and selection.
func (m Model) chart() render.Chart {
	return render.Chart{
		Width:      m.width,
		LabelWidth: m.config.Gantt.LabelWidth,
		Palette:    m.palette,
		Projects:   m.byID,
		Now:        m.now(),
		Selected:   m.selected,
	}
}

// plainChart renders the whole chart without colors, for the clipboard.
func (m Model) plainChart() string {
	c := m.chart()
	c.Palette = nil
	c.Selected = -1
	if c.Width <= 0 {
		c.Width = 120
	}
	return c.Render(m.layout)
}

// refreshViewport redraws the task rows and keeps the selection visible.
func (m *Model) refreshViewport() {
	if m.width == 0 || len(m.layout.Rows) == 0 {
		m.viewport.SetContent("")
		return
	}
	lines := m.chart().Lines(m.layout)
	m.viewport.SetContent(strings.Join(lines[chartHeaderHeight:], "\n"))

	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

func (m Model) renderTitle() string {
	w := m.layout.Window
	title := fmt.Sprintf("ganttline · %s · %s → %s", m.mode,
		dateutil.FormatDate(w.Start), dateutil.FormatDate(w.End))
	if len(m.insights) > 0 && m.insights[0].Level == insights.LevelCritical {
		title += "  " + m.styles.ErrorStyle.Render("● "+m.insights[0].Title)
	}
	return m.styles.TitleStyle.Render(title)
}

func (m Model) footerHeight() int {
	return view.FooterHeight(lipgloss.Height(m.help.View(m.keys)))
}

func (m Model) renderFooter() string {
	statusStyle := m.styles.StatusStyle
	if m.isError {
		statusStyle = m.styles.ErrorStyle
	}
	return view.RenderFooter(view.FooterState{
		Width:       m.width,
		DetailLine:  m.detailLine(),
		StatusLine:  m.statusMsg,
		HelpLine:    m.help.View(m.keys),
		DetailStyle: m.styles.DetailStyle,
		StatusStyle: statusStyle,
	})
}

// detailLine summarizes the selected task.
func (m Model) detailLine() string {
	t := m.selectedTask()
	if t == nil {
		return ""
	}
	parts := []string{
		t.Name,
		dateutil.FormatDate(t.StartDate) + " → " + dateutil.FormatDate(t.EndDate),
		string(t.Status),
		fmt.Sprintf("%d%%", t.Progress),
	}
	if p, ok := m.byID[t.ProjectID]; ok {
		parts = append(parts, p.Name)
	}
	if t.AssigneeID != "" {
		parts = append(parts, "@"+t.AssigneeID)
	}
	if t.IsOverdue(m.now()) {
		parts = append(parts, "overdue")
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderInsightsPanel() string {
	panelW := min(m.width-4, maxPanelWidth)
	// Border and padding take four columns.
	body := view.RenderInsightLines(view.BuildInsightLines(m.insights), max(panelW-4, 10), m.styles.Insight)
	return view.RenderPanel("Insights", body, "i/esc close", m.styles.Panel)
}
