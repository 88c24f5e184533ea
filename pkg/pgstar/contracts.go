package pgstar

import (
	"context"
	"io"
)

// FileDiscoverer finds the data files under a root directory.
type FileDiscoverer interface {
	// Discover returns the sorted absolute paths of all files under root
	// whose base name matches DataFilePattern.
	Discover(root string) ([]string, error)
}

// SongResolver looks up the song/artist pair matching a played track.
type SongResolver interface {
	// ResolveSong returns nil, nil when no pair matches exactly.
	ResolveSong(ctx context.Context, title, artist string, duration float64) (*SongRef, error)
}

// Transformer turns the content of one data file into rows.
// A Transformer either returns the complete batch for the file or an error;
// it never returns a partial batch.
type Transformer interface {
	// Name identifies the data category ("song", "log") in logs and metrics.
	Name() string

	Transform(ctx context.Context, r io.Reader, resolver SongResolver) (*Batch, error)
}

// Store opens the per-file transactions of a run.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single file's unit of work.
type Tx interface {
	SongResolver

	// Write executes the inserts and upserts for batch.
	Write(ctx context.Context, batch *Batch) (RowCounts, error)

	Commit(ctx context.Context) error

	// Rollback is a no-op after a successful Commit.
	Rollback(ctx context.Context) error
}

// ProgressReporter receives per-file progress of a load.
type ProgressReporter interface {
	Start(category, root string, total int)
	FileDone(done, total int, path string, counts RowCounts)
	Finish(err error)
}

// Approver confirms destructive schema operations.
//
// Implementations:
//   - ForcedApprover: shows a countdown and approves (--force)
//   - InteractiveApprover: asks the user to type the database name
type Approver interface {
	// RequestApproval returns false, nil when the user declines.
	RequestApproval(ctx context.Context, dbName string, action string) (bool, error)
}
