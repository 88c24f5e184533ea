package tui

import (
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// LineReporter writes one log line per committed file.
type LineReporter struct {
	logger pgstar.Logger
}

func NewLineReporter(logger pgstar.Logger) *LineReporter {
	return &LineReporter{logger: logger}
}

func (r *LineReporter) Start(category, root string, total int) {}

func (r *LineReporter) FileDone(done, total int, path string, counts pgstar.RowCounts) {
	r.logger.Info("%d/%d files processed.", done, total)
	r.logger.Verbose("%s: %d rows written", path, counts.Total())
}

func (r *LineReporter) Finish(err error) {}

var _ pgstar.ProgressReporter = (*LineReporter)(nil)

// NewReporter renders a progress bar on interactive terminals and plain
// lines everywhere else. verbose must match the logger's setting.
func NewReporter(logger pgstar.Logger, verbose bool) pgstar.ProgressReporter {
	if IsInteractive() {
		return NewBarReporter(verbose)
	}
	return NewLineReporter(logger)
}
