package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ganttline/internal/insights"
)

// InsightLineStyle selects how a panel line is drawn.
type InsightLineStyle int

const (
	InsightLineBody InsightLineStyle = iota
	InsightLineCritical
	InsightLineWarning
	InsightLinePositive
	InsightLineInfo
)

// InsightLine is one line of the insights panel.
type InsightLine struct {
	Text  string
	Style InsightLineStyle
}

// InsightStyles maps line kinds to styles.
type InsightStyles struct {
	Body     lipgloss.Style
	Critical lipgloss.Style
	Warning  lipgloss.Style
	Positive lipgloss.Style
	Info     lipgloss.Style
}

// BuildInsightLines turns insights into panel lines: a marked title per
// insight followed by its description, with a blank line between entries.
func BuildInsightLines(list []insights.Insight) []InsightLine {
	lines := make([]InsightLine, 0, len(list)*3)
	for i, in := range list {
		if i > 0 {
			lines = append(lines, InsightLine{})
		}
		style, mark := insightKind(in.Level)
		lines = append(lines, InsightLine{Text: mark + " " + in.Title, Style: style})
		if in.Description != "" {
			lines = append(lines, InsightLine{Text: "  " + in.Description, Style: InsightLineBody})
		}
	}
	return lines
}

func insightKind(l insights.Level) (InsightLineStyle, string) {
	switch l {
	case insights.LevelCritical:
		return InsightLineCritical, "✖"
	case insights.LevelWarning:
		return InsightLineWarning, "▲"
	case insights.LevelPositive:
		return InsightLinePositive, "✔"
	default:
		return InsightLineInfo, "ℹ"
	}
}

// RenderInsightLines styles lines and wraps them to width.
func RenderInsightLines(lines []InsightLine, width int, styles InsightStyles) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		style := styles.Body
		switch line.Style {
		case InsightLineCritical:
			style = styles.Critical
		case InsightLineWarning:
			style = styles.Warning
		case InsightLinePositive:
			style = styles.Positive
		case InsightLineInfo:
			style = styles.Info
		}
		out = append(out, style.Width(width).Render(line.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
