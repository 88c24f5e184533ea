package transform

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/pgstar/internal/records"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// LogTransformer produces time, users and songplays rows from event-log files.
type LogTransformer struct{}

// NewLogTransformer creates a LogTransformer.
func NewLogTransformer() *LogTransformer {
	return &LogTransformer{}
}

func (t *LogTransformer) Name() string { return "log" }

// Transform keeps NextSong events only. Each kept event yields exactly one
// time row, one user row and one songplay, in file order, so the last user
// row of a file carries the user's latest level.
//
// The whole file is parsed before any lookup is issued: a malformed line
// anywhere aborts the file without touching the store.
func (t *LogTransformer) Transform(ctx context.Context, r io.Reader, resolver pgstar.SongResolver) (*pgstar.Batch, error) {
	var plays []records.LogEvent
	for ev, err := range records.Lines[records.LogEvent](r) {
		if err != nil {
			return nil, err
		}
		if ev.IsNextSong() {
			plays = append(plays, ev)
		}
	}

	batch := &pgstar.Batch{
		Times:     make([]pgstar.TimeRow, 0, len(plays)),
		Users:     make([]pgstar.User, 0, len(plays)),
		Songplays: make([]pgstar.Songplay, 0, len(plays)),
	}

	for i := range plays {
		ev := &plays[i]
		start := FromEpochMillis(*ev.TS)

		batch.Times = append(batch.Times, Decompose(start))
		batch.Users = append(batch.Users, pgstar.User{
			UserID:    ev.UserID.ID,
			FirstName: ev.FirstName,
			LastName:  ev.LastName,
			Gender:    ev.Gender,
			Level:     ev.Level,
		})

		ref, err := resolver.ResolveSong(ctx, *ev.Song, *ev.Artist, *ev.Length)
		if err != nil {
			return nil, fmt.Errorf("resolving %q by %q: %w", *ev.Song, *ev.Artist, err)
		}

		play := pgstar.Songplay{
			StartTime: start,
			UserID:    ev.UserID.ID,
			Level:     ev.Level,
			SessionID: *ev.SessionID,
			UserAgent: ev.UserAgent,
			Location:  ev.Location,
		}
		if ref != nil {
			songID, artistID := ref.SongID, ref.ArtistID
			play.SongID = &songID
			play.ArtistID = &artistID
		}
		batch.Songplays = append(batch.Songplays, play)
	}

	return batch, nil
}

var _ pgstar.Transformer = (*LogTransformer)(nil)
