package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ganttline/internal/task"
	"github.com/javiermolinar/ganttline/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.DataLoadedMsg:
		m.loading = false
		m.tasks = msg.Tasks
		m.projects = msg.Projects
		m.byID = make(map[string]*task.Project, len(msg.Projects))
		for _, p := range msg.Projects {
			m.byID[p.ID] = p
		}
		m.relayout()
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.logger.Error("tui error", "error", msg.Err)
		return m.setStatus("Error: "+msg.Err.Error(), true)

	case commands.StatusMsg:
		return m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.isError = false
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize fits the viewport between the chart header and the footer.
func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-titleHeight-chartHeaderHeight-m.footerHeight(), 1)
	m.refreshViewport()
}
