// Package cli implements the familytower command-line interface.
//
// Commands read and change one family tree, stored by the backend named in
// the config file (or --store), and draw it with Graphviz. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - init: Create the tree with its root member
//   - add, edit: Attach a parent, child or spouse, or change a member's fields
//   - list, show, search, browse: Inspect members
//   - layout, render: Print positions or write SVG, PNG, JPG, DOT or JSON
//   - serve: Expose the tree over HTTP
//   - config, cache: Manage the config file and the cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/familytower/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a timestamped logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a multi-step command and logs each finished step.
type progress struct {
	logger *log.Logger
	start  time.Time
	steps  int
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// step logs a finished intermediate step at debug level.
func (p *progress) step(msg string, keyvals ...any) {
	p.steps++
	p.logger.Debug(msg, append(keyvals, "step", p.steps)...)
}

// donef logs the final message with the elapsed time, e.g.
// "Rendered 3 file(s) (1.234s)".
func (p *progress) donef(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// treeLogger tags the context logger with the tree key and store backend.
func treeLogger(ctx context.Context, key, backend string) *log.Logger {
	return loggerFromContext(ctx).With("tree", key, "store", backend)
}
