package transform

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/pgstar/internal/records"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// SongTransformer produces songs and artists rows from song-metadata files.
type SongTransformer struct{}

// NewSongTransformer creates a SongTransformer.
func NewSongTransformer() *SongTransformer {
	return &SongTransformer{}
}

func (t *SongTransformer) Name() string { return "song" }

// Transform emits one song and one artist row per record. Duplicates are left
// to the store, which ignores rows whose key already exists.
func (t *SongTransformer) Transform(ctx context.Context, r io.Reader, _ pgstar.SongResolver) (*pgstar.Batch, error) {
	batch := &pgstar.Batch{}

	for rec, err := range records.Lines[records.SongRecord](r) {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch.Songs = append(batch.Songs, pgstar.Song{
			SongID:   rec.SongID,
			Title:    *rec.Title,
			ArtistID: rec.ArtistID,
			Year:     *rec.Year,
			Duration: *rec.Duration,
		})
		batch.Artists = append(batch.Artists, pgstar.Artist{
			ArtistID:  rec.ArtistID,
			Name:      *rec.ArtistName,
			Location:  rec.ArtistLocation,
			Latitude:  rec.ArtistLatitude,
			Longitude: rec.ArtistLongitude,
		})
	}

	if len(batch.Songs) == 0 {
		return nil, fmt.Errorf("song file holds no record: %w", pgstar.ErrParseFailed)
	}
	return batch, nil
}

var _ pgstar.Transformer = (*SongTransformer)(nil)
