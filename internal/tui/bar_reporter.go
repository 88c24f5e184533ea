package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

type fileDoneMsg struct {
	done, total int
	path        string
	counts      pgstar.RowCounts
}

type finishMsg struct{ err error }

// loadModel is the bubbletea model behind BarReporter.
type loadModel struct {
	category string
	root     string
	total    int
	done     int
	last     string
	rows     int64
	err      error
	finished bool
	verbose  bool
	bar      progress.Model
}

func newLoadModel(category, root string, total int, verbose bool) loadModel {
	return loadModel{
		category: category,
		root:     root,
		total:    total,
		verbose:  verbose,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m loadModel) Init() tea.Cmd { return nil }

func (m loadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileDoneMsg:
		m.done = msg.done
		m.total = msg.total
		m.last = msg.path
		m.rows += msg.counts.Total()
		if m.verbose {
			// Printed above the frame; writing to stderr directly would tear it.
			return m, tea.Printf("[VERBOSE] %s: %d rows written", msg.path, msg.counts.Total())
		}
		return m, nil
	case finishMsg:
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m loadModel) percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m loadModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s data", m.category)))
	b.WriteString(MutedStyle.Render(" " + m.root))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString(fmt.Sprintf(" %d/%d files processed.", m.done, m.total))
	b.WriteString("\n")

	switch {
	case m.finished && m.err != nil:
		b.WriteString(ErrorStyle.Render(SymbolCross + " " + m.err.Error()))
	case m.finished:
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("%s %d rows written", SymbolCheck, m.rows)))
	case m.last != "":
		b.WriteString(MutedStyle.Render(filepath.Base(m.last)))
	}
	b.WriteString("\n")
	return b.String()
}

// BarReporter draws a progress bar on stderr for each data category.
type BarReporter struct {
	verbose bool
	program *tea.Program
	done    chan struct{}
}

// NewBarReporter creates a BarReporter. With verbose set, each committed
// file is also listed above the bar.
func NewBarReporter(verbose bool) *BarReporter {
	return &BarReporter{verbose: verbose}
}

func (r *BarReporter) Start(category, root string, total int) {
	r.program = tea.NewProgram(
		newLoadModel(category, root, total, r.verbose),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
	)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		r.program.Run() //nolint:errcheck
	}()
}

func (r *BarReporter) FileDone(done, total int, path string, counts pgstar.RowCounts) {
	if r.program == nil {
		return
	}
	r.program.Send(fileDoneMsg{done: done, total: total, path: path, counts: counts})
}

// Finish blocks until the final frame has been drawn.
func (r *BarReporter) Finish(err error) {
	if r.program == nil {
		return
	}
	r.program.Send(finishMsg{err: err})
	<-r.done
	r.program = nil
}

var _ pgstar.ProgressReporter = (*BarReporter)(nil)
