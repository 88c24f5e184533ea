package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/pgstar/internal/tui"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and approves once it elapses.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) pgstar.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string, action string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, tui.ErrorStyle.Render(fmt.Sprintf("DANGER: schema %s on database '%s'", action, dbName)))
	fmt.Fprintln(a.output, "All songs, artists, time, users and songplays rows will be deleted.")
	fmt.Fprintln(a.output)

	countdownSeconds := int(pgstar.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rDropping in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r%s Proceeding with schema %s...                              \n", tui.SymbolCheck, action)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ pgstar.Approver = (*ForcedApprover)(nil)
