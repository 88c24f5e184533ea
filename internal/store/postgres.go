package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// Beginner starts transactions. Satisfied by *pgxpool.Pool and *pgx.Conn.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements pgstar.Store on top of a pgx pool.
type PostgresStore struct {
	db Beginner
}

// NewPostgresStore creates a store. Panics if db is nil.
func NewPostgresStore(db Beginner) *PostgresStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresStore{db: db}
}

// Begin opens the transaction covering one source file.
func (s *PostgresStore) Begin(ctx context.Context) (pgstar.Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", pgstar.ErrLoadFailed, err)
	}
	return &postgresTx{tx: tx}, nil
}

type postgresTx struct {
	tx pgx.Tx
}

// queued ties a batch statement to the counter its result feeds.
type queued struct {
	table string
	count *int64
}

func (t *postgresTx) Write(ctx context.Context, b *pgstar.Batch) (pgstar.RowCounts, error) {
	var counts pgstar.RowCounts
	if b == nil || b.Len() == 0 {
		return counts, nil
	}

	batch := &pgx.Batch{}
	order := make([]queued, 0, b.Len())

	for _, s := range b.Songs {
		batch.Queue(insertSong, s.SongID, s.Title, s.ArtistID, s.Year, s.Duration)
		order = append(order, queued{"songs", &counts.Songs})
	}
	for _, a := range b.Artists {
		batch.Queue(insertArtist, a.ArtistID, a.Name, a.Location, a.Latitude, a.Longitude)
		order = append(order, queued{"artists", &counts.Artists})
	}
	for _, r := range b.Times {
		batch.Queue(insertTime, r.StartTime, timeOfDay(r),
			r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday)
		order = append(order, queued{"time", &counts.Times})
	}
	for _, u := range b.Users {
		batch.Queue(upsertUser, u.UserID, u.FirstName, u.LastName, u.Gender, u.Level)
		order = append(order, queued{"users", &counts.Users})
	}
	for _, p := range b.Songplays {
		batch.Queue(insertSongplay, p.StartTime, p.UserID, p.Level,
			p.SongID, p.ArtistID, p.SessionID, p.Location, p.UserAgent)
		order = append(order, queued{"songplays", &counts.Songplays})
	}

	results := t.tx.SendBatch(ctx, batch)
	for i, q := range order {
		tag, err := results.Exec()
		if err != nil {
			results.Close() //nolint:errcheck
			return pgstar.RowCounts{}, loadError(q.table, i, err)
		}
		*q.count += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return pgstar.RowCounts{}, fmt.Errorf("%w: %w", pgstar.ErrLoadFailed, err)
	}

	return counts, nil
}

func (t *postgresTx) ResolveSong(ctx context.Context, title, artist string, duration float64) (*pgstar.SongRef, error) {
	var ref pgstar.SongRef
	err := t.tx.QueryRow(ctx, selectSongRef, title, artist, duration).Scan(&ref.SongID, &ref.ArtistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: song lookup: %w", pgstar.ErrLoadFailed, err)
	}
	return &ref, nil
}

func (t *postgresTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %w", pgstar.ErrLoadFailed, err)
	}
	return nil
}

// Rollback is safe to call after Commit.
func (t *postgresTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func timeOfDay(r pgstar.TimeRow) pgtype.Time {
	return pgtype.Time{Microseconds: r.TimeOfDay.Microseconds(), Valid: true}
}

func loadError(table string, index int, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s statement %d: %s (SQLSTATE %s): %w",
			pgstar.ErrLoadFailed, table, index+1, pgErr.Message, pgErr.Code, err)
	}
	return fmt.Errorf("%w: %s statement %d: %w", pgstar.ErrLoadFailed, table, index+1, err)
}

var (
	_ pgstar.Store = (*PostgresStore)(nil)
	_ pgstar.Tx    = (*postgresTx)(nil)
)
