package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

func TestRunMetrics_ObserveFile(t *testing.T) {
	m := New()

	m.ObserveFile("song", &pgstar.Batch{}, pgstar.RowCounts{Songs: 2, Artists: 1})
	m.ObserveFile("log", &pgstar.Batch{}, pgstar.RowCounts{Times: 3, Users: 3, Songplays: 3})
	m.ObserveFile("log", &pgstar.Batch{}, pgstar.RowCounts{Songplays: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesProcessed.WithLabelValues("song")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesProcessed.WithLabelValues("log")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsWritten.WithLabelValues("songs")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rowsWritten.WithLabelValues("songplays")))
}

func TestRunMetrics_ObserveFileCountsLookups(t *testing.T) {
	m := New()
	songID, artistID := "S1", "A1"
	batch := &pgstar.Batch{Songplays: []pgstar.Songplay{
		{SongID: &songID, ArtistID: &artistID},
		{},
		{},
	}}

	m.ObserveFile("log", batch, pgstar.RowCounts{Songplays: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues(lookupMatched)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues(lookupMissed)))
}

func TestRunMetrics_Finish(t *testing.T) {
	m := New()
	at := time.Unix(1700000000, 0)

	m.Finish(at, nil)
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastRun))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lastSuccess))

	m.Finish(at, errors.New("load failed"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess))
}

func TestRunMetrics_WriteFile(t *testing.T) {
	m := New()
	m.ObserveFile("song", &pgstar.Batch{}, pgstar.RowCounts{Songs: 1, Artists: 1})
	m.ObserveFile("log", &pgstar.Batch{Songplays: []pgstar.Songplay{{}}}, pgstar.RowCounts{Songplays: 1})
	m.Finish(time.Now(), nil)

	path := filepath.Join(t.TempDir(), "pgstar.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `pgstar_files_processed_total{category="song"} 1`)
	assert.Contains(t, text, `pgstar_rows_written_total{table="songs"} 1`)
	assert.Contains(t, text, `pgstar_songplay_lookups_total{result="matched"} 0`)
	assert.Contains(t, text, `pgstar_songplay_lookups_total{result="missed"} 1`)
	assert.Contains(t, text, "pgstar_last_run_success 1")
}

func TestRunMetrics_WriteFileBadDirectory(t *testing.T) {
	err := New().WriteFile(filepath.Join(t.TempDir(), "missing", "pgstar.prom"))
	assert.Error(t, err)
}
