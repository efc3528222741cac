// Package cli implements the astrolabe command-line interface.
//
// The commands wrap the placement and layout packages for use from a shell
// or a script, and start the HTTP service. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - place: Find a free position for the next prompt on a canvas
//   - branch: Position a branch off one side of an existing node
//   - layout: Arrange a whole canvas or conversation with Graphviz dot
//   - serve: Run the JSON HTTP API
//   - config: Inspect the configuration file
//   - cache: Manage the layout cache
//
// Input files are either canvases ({"nodes": [...], "edges": [...]}) or
// conversations ({"messages": [...], "links": [...]}); see [loadInput].
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation together with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, e.g.
// "Laid out 12 nodes (41ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
