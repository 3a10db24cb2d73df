// Package logging configures the structured logger shared by the CLI, TUI
// and HTTP server.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "ganttline-debug.log"

// Options selects where logs go.
type Options struct {
	// Debug writes debug level logs to DebugLogPath in the working directory.
	Debug bool
	// Output receives info level logs when Debug is off. Nil discards them.
	Output io.Writer
}

// Setup builds a JSON logger, installs it as the slog default and returns
// a function that releases the log file, if any.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	closeFn := func() error { return nil }

	var handler slog.Handler
	switch {
	case opts.Debug:
		f, err := os.Create(DebugLogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("creating debug log: %w", err)
		}
		closeFn = f.Close
		handler = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	case opts.Output != nil:
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.DiscardHandler
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	if opts.Debug {
		logger.Debug("debug logging enabled", "log_file", DebugLogPath)
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
