package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/task"
)

const shortIDLen = 8

// shortID returns the prefix of id shown in listings.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// statusSymbol returns the status indicator for a task.
func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "○"
	case task.StatusInProgress:
		return "◐"
	case task.StatusReview:
		return "◑"
	case task.StatusCompleted:
		return "●"
	default:
		return "?"
	}
}

// FormatDuration formats a number of calendar days as weeks and days.
func FormatDuration(days int) string {
	if days <= 0 {
		return "0d"
	}
	weeks, rest := days/7, days%7
	switch {
	case weeks == 0:
		return fmt.Sprintf("%dd", rest)
	case rest == 0:
		return fmt.Sprintf("%dw", weeks)
	default:
		return fmt.Sprintf("%dw%dd", weeks, rest)
	}
}

// ProgressBar renders pct as a fixed-width bar.
func ProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// fit truncates s to width cells and pads it on the right.
func fit(s string, width int) string {
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}

// PrintTaskRow prints a single task row with consistent formatting.
func PrintTaskRow(w io.Writer, t *task.Task, now time.Time, nameWidth int) {
	name := fit(t.Name, nameWidth)
	switch {
	case t.IsDeleted():
		name = formatMuted(name + " (deleted)")
	case t.IsCompleted():
		name = formatMuted(name)
	case t.IsOverdue(now):
		name = formatCritical(name)
	}

	fmt.Fprintf(w, "  %s %s  %s → %s  %-6s %s %3d%%  %s",
		statusSymbol(t.Status),
		shortID(t.ID),
		dateutil.FormatDate(t.StartDate),
		dateutil.FormatDate(t.EndDate),
		FormatDuration(t.Duration()),
		ProgressBar(t.Progress, 10),
		t.Progress,
		name,
	)
	if t.AssigneeID != "" {
		fmt.Fprint(w, formatMuted("  @"+t.AssigneeID))
	}
	fmt.Fprintln(w)
}

// insightSymbol returns the marker printed before an insight.
func insightSymbol(l insights.Level) string {
	switch l {
	case insights.LevelCritical:
		return formatCritical("✖")
	case insights.LevelWarning:
		return formatWarning("▲")
	case insights.LevelPositive:
		return formatPositive("✔")
	default:
		return formatInfo("ℹ")
	}
}

// PrintInsight prints one insight: a marked title and a wrapped description.
func PrintInsight(w io.Writer, in insights.Insight, width int) {
	fmt.Fprintf(w, "%s %s\n", insightSymbol(in.Level), formatHeader(in.Title))
	wrapAndPrint(w, in.Description, "  ", width-2, formatMuted)
}

// PrintInsightWrapped formats and prints narrative text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	// Strip markdown code blocks
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth, formatInfo)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case isNumberedItem(trimmed):
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 || s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	return s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.'
}

// wrapAndPrint wraps text to width cells and prints it with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int, style func(string) string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	continuation := strings.Repeat(" ", ansi.StringWidth(prefix))
	linePrefix := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case ansi.StringWidth(line)+1+ansi.StringWidth(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, style(linePrefix+line))
			linePrefix = continuation
			line = word
		}
	}
	fmt.Fprintln(w, style(linePrefix+line))
}

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
