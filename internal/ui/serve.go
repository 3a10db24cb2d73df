package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ganttline/internal/logging"
	"github.com/javiermolinar/ganttline/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Start the HTTP API over the configured database.

Routes: /health, /api/projects, /api/tasks, /api/gantt and /api/insights.

Example:
  ganttline serve --addr=:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			// Request logs go to stderr unless --debug already sends them to a file.
			if !a.debug {
				logger, closeLog, err := logging.Setup(logging.Options{Output: cmd.ErrOrStderr()})
				if err != nil {
					return err
				}
				_ = a.closeLog()
				a.logger, a.closeLog = logger, closeLog
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.repo, server.Options{
				Mode:   a.config.Mode(),
				Locale: a.config.Locale(),
				Logger: a.logger,
				Now:    a.now,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
