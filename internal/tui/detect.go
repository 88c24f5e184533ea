package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how progress is rendered.
type Mode int

const (
	// ModeNonInteractive prints one plain line per file.
	ModeNonInteractive Mode = iota
	// ModeInteractive renders a live progress bar.
	ModeInteractive
)

// DetectMode returns ModeNonInteractive when PGSTAR_NON_INTERACTIVE=1, CI
// or NO_COLOR is set, or stderr is not a terminal.
func DetectMode() Mode {
	if os.Getenv("PGSTAR_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
