package records

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

const songLine = `{"num_songs":1,"artist_id":"A1","artist_latitude":1.0,"artist_longitude":2.0,"artist_location":"L","artist_name":"N","song_id":"S1","title":"T","duration":200.0,"year":2000}`

func collect[T any](t *testing.T, input string) ([]T, error) {
	t.Helper()
	var out []T
	for rec, err := range Lines[T](strings.NewReader(input)) {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestLines_SongRecord(t *testing.T) {
	recs, err := collect[SongRecord](t, songLine+"\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "S1", r.SongID)
	assert.Equal(t, "T", *r.Title)
	assert.Equal(t, "A1", r.ArtistID)
	assert.Equal(t, 2000, *r.Year)
	assert.Equal(t, 200.0, *r.Duration)
	assert.Equal(t, "N", *r.ArtistName)
	assert.Equal(t, "L", *r.ArtistLocation)
	assert.Equal(t, 1.0, *r.ArtistLatitude)
	assert.Equal(t, 2.0, *r.ArtistLongitude)
}

func TestLines_SongRecordNullCoordinatesAndZeroYear(t *testing.T) {
	line := `{"artist_id":"A2","artist_latitude":null,"artist_longitude":null,"artist_location":"","artist_name":"M","song_id":"S2","title":"U","duration":1.5,"year":0}`

	recs, err := collect[SongRecord](t, line)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].ArtistLatitude)
	assert.Nil(t, recs[0].ArtistLongitude)
	assert.Equal(t, 0, *recs[0].Year)
	assert.Equal(t, "", *recs[0].ArtistLocation)
}

func TestLines_SongRecordMissingRequired(t *testing.T) {
	line := `{"artist_id":"A2","artist_name":"M","title":"U","duration":1.5}`

	_, err := collect[SongRecord](t, line)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))
	assert.Contains(t, err.Error(), "song_id")
	assert.Contains(t, err.Error(), "year")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
}

func TestLines_MalformedLineStopsSequence(t *testing.T) {
	input := `{"ts":1541105830796,"page":"Home"}` + "\n" + `{"ts":` + "\n" + `{"ts":1,"page":"Home"}`

	recs, err := collect[LogEvent](t, input)
	require.Error(t, err)
	assert.Len(t, recs, 1)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
}

func TestLines_SkipsBlankLines(t *testing.T) {
	input := "\n" + `{"ts":1,"page":"Home"}` + "\n\n   \n" + `{"ts":2,"page":"Logout"}` + "\n"

	recs, err := collect[LogEvent](t, input)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestLines_EmptyInput(t *testing.T) {
	recs, err := collect[LogEvent](t, "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLines_EarlyBreak(t *testing.T) {
	input := `{"ts":1,"page":"Home"}` + "\n" + `not json`

	n := 0
	for _, err := range Lines[LogEvent](strings.NewReader(input)) {
		require.NoError(t, err)
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestLines_LogEventNextSongRequiresPlaybackFields(t *testing.T) {
	line := `{"ts":1541105830796,"page":"NextSong","userId":"39","level":"free","sessionId":38}`

	_, err := collect[LogEvent](t, line)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "song")
	assert.Contains(t, err.Error(), "length")
}

func TestLines_LogEventNavigationAllowsNulls(t *testing.T) {
	line := `{"artist":null,"auth":"Logged Out","firstName":null,"gender":null,"length":null,"level":"free","page":"Login","sessionId":52,"song":null,"ts":1541207073796,"userAgent":null,"userId":""}`

	recs, err := collect[LogEvent](t, line)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].IsNextSong())
	assert.False(t, recs[0].UserID.Valid)
	assert.Nil(t, recs[0].Song)
}

func TestLines_LogEventMissingTimestamp(t *testing.T) {
	_, err := collect[LogEvent](t, `{"page":"Home"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ts")
}

func TestUserID_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    UserID
		wantErr bool
	}{
		{"string", `{"ts":1,"page":"Home","userId":"39"}`, UserID{ID: 39, Valid: true}, false},
		{"number", `{"ts":1,"page":"Home","userId":39}`, UserID{ID: 39, Valid: true}, false},
		{"zero", `{"ts":1,"page":"Home","userId":"0"}`, UserID{ID: 0, Valid: true}, false},
		{"empty", `{"ts":1,"page":"Home","userId":""}`, UserID{}, false},
		{"null", `{"ts":1,"page":"Home","userId":null}`, UserID{}, false},
		{"garbage", `{"ts":1,"page":"Home","userId":"abc"}`, UserID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := collect[LogEvent](t, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, recs[0].UserID)
		})
	}
}

func TestLines_LogEventNextSongUserID(t *testing.T) {
	const base = `{"ts":1541105830796,"page":"NextSong","song":"S","artist":"A","length":1.5,"level":"free","sessionId":38,`

	recs, err := collect[LogEvent](t, base+`"userId":"0"}`)
	require.NoError(t, err)
	assert.Equal(t, UserID{ID: 0, Valid: true}, recs[0].UserID)

	_, err = collect[LogEvent](t, base+`"userId":""}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing field userId")
}

func TestLines_SongRecordEmptyVersusAbsentText(t *testing.T) {
	emptyTitle := strings.Replace(songLine, `"title":"T"`, `"title":""`, 1)
	recs, err := collect[SongRecord](t, emptyTitle)
	require.NoError(t, err)
	assert.Equal(t, "", *recs[0].Title)

	emptyArtist := strings.Replace(songLine, `"artist_name":"N"`, `"artist_name":""`, 1)
	recs, err = collect[SongRecord](t, emptyArtist)
	require.NoError(t, err)
	assert.Equal(t, "", *recs[0].ArtistName)

	_, err = collect[SongRecord](t, strings.Replace(songLine, `"title":"T",`, "", 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))
	assert.Contains(t, err.Error(), "missing field title")

	_, err = collect[SongRecord](t, strings.Replace(songLine, `"title":"T"`, `"title":null`, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}
