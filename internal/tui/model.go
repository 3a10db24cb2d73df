// Package tui provides the interactive Gantt chart.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ganttline/internal/config"
	"github.com/javiermolinar/ganttline/internal/gantt"
	"github.com/javiermolinar/ganttline/internal/insights"
	"github.com/javiermolinar/ganttline/internal/task"
	"github.com/javiermolinar/ganttline/internal/tui/commands"
	"github.com/javiermolinar/ganttline/internal/tui/theme"
)

const statusTimeout = 3 * time.Second

// Options tweaks the TUI. Zero values pick sensible defaults.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx    context.Context
	repo   task.Repository
	config *config.Config
	logger *slog.Logger
	now    func() time.Time

	// Look
	palette *theme.Palette
	styles  Styles
	keys    keyMap
	help    help.Model

	// Data
	tasks    []*task.Task
	projects []*task.Project
	byID     map[string]*task.Project
	insights []insights.Insight
	layout   gantt.Layout

	// State
	mode         gantt.Mode
	locale       gantt.Locale
	selected     int // index into layout.Rows
	showInsights bool
	loading      bool

	// Terminal dimensions and the scrolling task rows
	width    int
	height   int
	viewport viewport.Model

	statusMsg string
	isError   bool
}

// New creates a model showing the tasks of repo.
func New(ctx context.Context, repo task.Repository, cfg *config.Config, opts Options) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		opts.Logger.Warn("theme not available, using defaults", "theme", cfg.UI.Theme, "error", err)
	}
	palette := theme.NewPalette(th)

	m := Model{
		ctx:      ctx,
		repo:     repo,
		config:   cfg,
		logger:   opts.Logger,
		now:      opts.Now,
		palette:  palette,
		styles:   NewStyles(palette),
		keys:     defaultKeyMap(),
		help:     help.New(),
		byID:     map[string]*task.Project{},
		mode:     cfg.Mode(),
		locale:   cfg.Locale(),
		loading:  true,
		viewport: viewport.New(0, 0),
	}
	m.styles.applyHelp(&m.help)
	m.relayout()
	return m
}

// Init starts loading tasks.
func (m Model) Init() tea.Cmd {
	return commands.LoadData(m.ctx, m.repo)
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, repo task.Repository, cfg *config.Config, opts Options) error {
	m := New(ctx, repo, cfg, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// relayout recomputes the chart layout and insights from the loaded data.
func (m *Model) relayout() {
	now := m.now()
	m.layout = gantt.Compute(m.tasks, m.mode, now, gantt.Options{Locale: m.locale})
	m.insights = insights.Generate(m.tasks, m.projects, now)
	m.selected = min(max(m.selected, 0), max(len(m.layout.Rows)-1, 0))

	m.logger.Debug("layout computed",
		"mode", m.layout.Mode,
		"tasks", len(m.layout.Rows),
		"days", m.layout.Window.Days,
	)
	m.refreshViewport()
}

// selectedTask returns the highlighted task, or nil when there are none.
func (m Model) selectedTask() *task.Task {
	if m.selected < 0 || m.selected >= len(m.layout.Rows) {
		return nil
	}
	return m.layout.Rows[m.selected].Task
}

// firstActiveToday returns the first row whose task spans today, or -1.
func (m Model) firstActiveToday() int {
	now := m.now()
	for i, row := range m.layout.Rows {
		if row.Task.ActiveOn(now) {
			return i
		}
	}
	return -1
}
