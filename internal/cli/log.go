// Package cli implements the gridpath command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Results
// (status lines, grids, tables) go to stdout; logs go to stderr.
//
// # Commands
//
//   - solve: run one search on a text grid file and print the annotated grid
//   - compare: run A* and Dijkstra on the same grid and tabulate the results
//   - serve: expose the solver over HTTP and WebSocket
//   - cache: inspect or clear the on-disk result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// level comes from [log] level in the config file. The logger is passed
// through context.Context so the solver runner logs with the same settings.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with an "elapsed" field rounded to the
// millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
