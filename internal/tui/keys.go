package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/tui/commands"
)

type keyMap struct {
	Day      key.Binding
	Week     key.Binding
	Month    key.Binding
	Cycle    key.Binding
	Up       key.Binding
	Down     key.Binding
	Today    key.Binding
	Insights key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Day:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Week:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Cycle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next zoom")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Insights: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insights")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy chart")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Down, k.Up, k.Today, k.Insights, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Day, k.Week, k.Month, k.Cycle},
		{k.Down, k.Up, k.Today},
		{k.Insights, k.Copy, k.Reload},
		{k.Help, k.Close, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", "key", msg.String(), "mode", m.mode, "selected", m.selected)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.showInsights = false
		m.help.ShowAll = false
		m.resize()
		return m, nil
	}

	// The insights panel only listens to its toggle.
	if m.showInsights {
		if key.Matches(msg, m.keys.Insights) {
			m.showInsights = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Day):
		return m.setMode(gantt.ModeDay)
	case key.Matches(msg, m.keys.Week):
		return m.setMode(gantt.ModeWeek)
	case key.Matches(msg, m.keys.Month):
		return m.setMode(gantt.ModeMonth)
	case key.Matches(msg, m.keys.Cycle):
		return m.setMode(m.mode.Next())

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.layout.Rows)-1 {
			m.selected++
			m.refreshViewport()
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refreshViewport()
		}
	case key.Matches(msg, m.keys.Today):
		i := m.firstActiveToday()
		if i < 0 {
			return m.setStatus("No task is active today", false)
		}
		m.selected = i
		m.refreshViewport()

	case key.Matches(msg, m.keys.Insights):
		m.showInsights = true
	case key.Matches(msg, m.keys.Copy):
		if len(m.layout.Rows) == 0 {
			return m.setStatus("Nothing to copy", false)
		}
		return m, commands.CopyToClipboard(m.plainChart())
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, commands.LoadData(m.ctx, m.repo)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}

	return m, nil
}

func (m Model) setMode(mode gantt.Mode) (tea.Model, tea.Cmd) {
	if mode == m.mode {
		return m, nil
	}
	m.logger.Debug("zoom changed", "from", m.mode, "to", mode)
	m.mode = mode
	m.relayout()
	return m, nil
}

func (m Model) setStatus(msg string, isError bool) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.isError = isError
	return m, commands.ClearStatusAfter(statusTimeout)
}
