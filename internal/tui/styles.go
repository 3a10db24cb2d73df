package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ganttline/internal/tui/theme"
	"github.com/javiermolinar/ganttline/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Bg lipgloss.Color

	TitleStyle  lipgloss.Style
	MutedStyle  lipgloss.Style
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Help footer
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
	HelpSepStyle  lipgloss.Style

	Panel   view.PanelStyles
	Insight view.InsightStyles
}

// NewStyles derives the TUI styles from a palette.
func NewStyles(p *theme.Palette) Styles {
	body := lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg)

	return Styles{
		Bg: p.Bg,

		TitleStyle:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		MutedStyle:  lipgloss.NewStyle().Foreground(p.FgMuted),
		DetailStyle: lipgloss.NewStyle().Foreground(p.Fg),
		StatusStyle: lipgloss.NewStyle().Foreground(p.Accent),
		ErrorStyle:  lipgloss.NewStyle().Foreground(p.Overdue).Bold(true),

		HelpKeyStyle:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDescStyle: lipgloss.NewStyle().Foreground(p.FgMuted),
		HelpSepStyle:  lipgloss.NewStyle().Foreground(p.BgSelection),

		Panel: view.PanelStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Accent).
				BorderBackground(p.Bg).
				Background(p.Bg).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg).Bold(true),
			Body:   body,
			Footer: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		},
		Insight: view.InsightStyles{
			Body:     lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
			Critical: lipgloss.NewStyle().Foreground(p.Overdue).Background(p.Bg).Bold(true),
			Warning:  lipgloss.NewStyle().Foreground(p.Warning).Background(p.Bg).Bold(true),
			Positive: lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg).Bold(true),
			Info:     body.Bold(true),
		},
	}
}

// applyHelp styles the help footer.
func (s Styles) applyHelp(h *help.Model) {
	h.Styles.ShortKey = s.HelpKeyStyle
	h.Styles.ShortDesc = s.HelpDescStyle
	h.Styles.ShortSeparator = s.HelpSepStyle
	h.Styles.FullKey = s.HelpKeyStyle
	h.Styles.FullDesc = s.HelpDescStyle
	h.Styles.FullSeparator = s.HelpSepStyle
	h.Styles.Ellipsis = s.HelpSepStyle
}
