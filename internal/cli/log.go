// Package cli implements the arborheat command-line interface.
//
// This package provides commands for rendering neuron reconstructions as path
// length heatmaps, re-rendering saved scenes and turning them into movies.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - heatmap: Color every soma-to-tip path by its length (2D or 3D)
//   - highlight: Show only the path to the n-th longest tip
//   - compare: Heatmaps of every file in a folder with a shared scale
//   - visualize: Re-render a saved scene
//   - movie: Rotate a scene or geometry into mp4, ogv, gif or an image strip
//   - tips: Print the tip ranking
//   - tree: Branch dendrogram via Graphviz
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// also attached to the command context for helpers without access to the CLI.
//
// # Example
//
//	import "github.com/matzehuels/arborheat/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Timestamps keep hundredths of a second
// since most stages finish well inside one.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one stage of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time as "took",
// e.g. "Encoded output=cell.gif frames=36 took=1.204s".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

// withLogger attaches l to ctx for helpers that only see the command context.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() when a helper runs outside of one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
