package services

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// FileSource lists and opens data files. Satisfied by *scanner.Scanner.
type FileSource interface {
	pgstar.FileDiscoverer
	OpenFile(path string) (io.ReadCloser, error)
}

// FileObserver is told about every committed file, never about one that
// was rolled back.
type FileObserver interface {
	ObserveFile(category string, batch *pgstar.Batch, counts pgstar.RowCounts)
}

// LoadStats summarizes one category of a run.
type LoadStats struct {
	Files int
	Rows  pgstar.RowCounts
}

// Loader processes the files under one root strictly in order, one
// transaction per file. The first failure rolls back the current file and
// stops the load; files committed before it stay committed.
//
// Thread-Safety: NOT safe for concurrent Load calls on the same instance.
type Loader struct {
	files    FileSource
	store    pgstar.Store
	logger   pgstar.Logger
	reporter pgstar.ProgressReporter
	observer FileObserver
}

// NewLoader panics on nil dependencies. observer may be nil.
func NewLoader(files FileSource, store pgstar.Store, logger pgstar.Logger, reporter pgstar.ProgressReporter, observer FileObserver) *Loader {
	if files == nil {
		panic("files cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	return &Loader{files: files, store: store, logger: logger, reporter: reporter, observer: observer}
}

// Load discovers every data file under root and applies transformer to each.
func (l *Loader) Load(ctx context.Context, root string, transformer pgstar.Transformer) (LoadStats, error) {
	var stats LoadStats

	paths, err := l.files.Discover(root)
	if err != nil {
		return stats, err
	}

	total := len(paths)
	l.logger.Info("%d files found in %s", total, root)
	l.reporter.Start(transformer.Name(), root, total)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			l.reporter.Finish(err)
			return stats, err
		}

		batch, counts, err := l.loadFile(ctx, path, transformer)
		if err != nil {
			err = fmt.Errorf("%s file %s: %w", transformer.Name(), path, err)
			l.reporter.Finish(err)
			return stats, err
		}

		stats.Files++
		stats.Rows.Add(counts)
		if l.observer != nil {
			l.observer.ObserveFile(transformer.Name(), batch, counts)
		}
		l.reporter.FileDone(i+1, total, path, counts)
	}

	l.reporter.Finish(nil)
	return stats, nil
}

func (l *Loader) loadFile(ctx context.Context, path string, transformer pgstar.Transformer) (*pgstar.Batch, pgstar.RowCounts, error) {
	r, err := l.files.OpenFile(path)
	if err != nil {
		return nil, pgstar.RowCounts{}, err
	}
	defer r.Close()

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, pgstar.RowCounts{}, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			l.logger.Error("rollback of %s failed: %v", path, rbErr)
		}
	}()

	batch, err := transformer.Transform(ctx, r, tx)
	if err != nil {
		return nil, pgstar.RowCounts{}, err
	}

	counts, err := tx.Write(ctx, batch)
	if err != nil {
		return nil, pgstar.RowCounts{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pgstar.RowCounts{}, err
	}

	return batch, counts, nil
}
