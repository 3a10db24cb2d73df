package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterState holds the strings and styles of the footer.
type FooterState struct {
	Width       int
	DetailLine  string // selected task summary
	StatusLine  string // transient message
	HelpLine    string
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	Bg          lipgloss.Color
}

// FooterHeight returns the footer height for a help block of helpLines lines.
func FooterHeight(helpLines int) int {
	return 2 + max(helpLines, 1)
}

// RenderFooter renders the detail, status and help lines.
func RenderFooter(state FooterState) string {
	s := footerLine(state.Width, state.DetailStyle, state.DetailLine) + "\n" +
		footerLine(state.Width, state.StatusStyle, state.StatusLine) + "\n" +
		state.HelpLine
	return PlaceBox(state.Width, FooterHeight(lipgloss.Height(state.HelpLine)), lipgloss.Top, s, state.Bg)
}

func footerLine(width int, style lipgloss.Style, text string) string {
	if width > 0 && ansi.StringWidth(text) > width {
		text = ansi.Truncate(text, width, "…")
	}
	return style.Render(text)
}
