// Package ui implements the ganttline command line.
package ui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/config"
	"github.com/javiermolinar/ganttline/internal/db"
	"github.com/javiermolinar/ganttline/internal/logging"
	"github.com/javiermolinar/ganttline/internal/task"
	"github.com/javiermolinar/ganttline/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       task.Repository
	config     *config.Config
	root       *cobra.Command
	debug      bool   // Enable debug logging
	configPath string // Overrides the default config file
	logger     *slog.Logger
	closeLog   func() error
	now        func() time.Time
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path by the commands that need it.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{
		repo:     repo,
		config:   cfg,
		logger:   logging.Nop(),
		closeLog: func() error { return nil },
		now:      time.Now,
	}

	a.root = &cobra.Command{
		Use:   "ganttline",
		Short: "Plan projects on a terminal Gantt chart",
		Long: `Ganttline keeps projects and tasks in a local database and lays them
out on a Gantt timeline you can zoom by day, week or month.

Run without arguments for the interactive chart.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.repo, a.config, tui.Options{Logger: a.logger})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to "+logging.DebugLogPath)
	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.projectCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.restoreCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.ganttCmd())
	a.root.AddCommand(a.timelineCmd())
	a.root.AddCommand(a.insightsCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	logger, closeLog, err := logging.Setup(logging.Options{Debug: a.debug})
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog
	a.logger.Debug("command started", "command", cmd.CommandPath(), "db_path", a.config.Storage.DBPath)
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := openRepo(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

func openRepo(dbPath string) (task.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ganttline %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and the debug log.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if cerr := a.closeLog(); err == nil {
		err = cerr
	}
	return err
}
