package transform

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

const songFile = `{"song_id":"S1","title":"T","artist_id":"A1","year":2000,"duration":200.0,"artist_name":"N","artist_location":"L","artist_latitude":1.0,"artist_longitude":2.0}`

const nextSongLine = `{"artist":"N","auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":0,"lastName":"Frye","length":200.0,"level":"free","location":"San Francisco-Oakland-Hayward, CA","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":38,"song":"T","status":200,"ts":1541105830796,"userAgent":"Mozilla/5.0","userId":"39"}`

const loginLine = `{"artist":null,"auth":"Logged Out","firstName":null,"gender":null,"itemInSession":0,"lastName":null,"length":null,"level":"free","location":null,"method":"PUT","page":"Login","registration":null,"sessionId":52,"song":null,"status":307,"ts":1541207073796,"userAgent":null,"userId":""}`

// catalog resolves against an in-memory song/artist pair list.
type catalog struct {
	entries map[[3]string]pgstar.SongRef
	calls   int
	err     error
}

func newCatalog() *catalog {
	return &catalog{entries: map[[3]string]pgstar.SongRef{}}
}

func (c *catalog) add(title, artist string, duration string, ref pgstar.SongRef) {
	c.entries[[3]string{title, artist, duration}] = ref
}

func (c *catalog) ResolveSong(_ context.Context, title, artist string, duration float64) (*pgstar.SongRef, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	ref, ok := c.entries[[3]string{title, artist, formatDuration(duration)}]
	if !ok {
		return nil, nil
	}
	return &ref, nil
}

func formatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func TestSongTransformer_EndToEndScenario(t *testing.T) {
	batch, err := NewSongTransformer().Transform(context.Background(), strings.NewReader(songFile), nil)
	require.NoError(t, err)

	require.Len(t, batch.Songs, 1)
	assert.Equal(t, pgstar.Song{SongID: "S1", Title: "T", ArtistID: "A1", Year: 2000, Duration: 200.0}, batch.Songs[0])

	require.Len(t, batch.Artists, 1)
	a := batch.Artists[0]
	assert.Equal(t, "A1", a.ArtistID)
	assert.Equal(t, "N", a.Name)
	assert.Equal(t, "L", *a.Location)
	assert.Equal(t, 1.0, *a.Latitude)
	assert.Equal(t, 2.0, *a.Longitude)

	assert.Empty(t, batch.Times)
	assert.Empty(t, batch.Users)
	assert.Empty(t, batch.Songplays)
}

func TestSongTransformer_IdsMatchInput(t *testing.T) {
	input := strings.Join([]string{
		`{"song_id":"SOUPIRU12A6D4FA1E1","title":"Der Kleine Dompfaff","artist_id":"ARJIE2Y1187B994AB7","year":0,"duration":152.92036,"artist_name":"Line Renaud","artist_location":"","artist_latitude":null,"artist_longitude":null}`,
		`{"song_id":"SOMZWCG12A8C13C480","title":"I Didn't Mean To","artist_id":"ARD7TVE1187B99BFB1","year":0,"duration":218.93179,"artist_name":"Casual","artist_location":"California - LA","artist_latitude":null,"artist_longitude":null}`,
	}, "\n")

	batch, err := NewSongTransformer().Transform(context.Background(), strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, batch.Songs, 2)

	assert.Equal(t, "SOUPIRU12A6D4FA1E1", batch.Songs[0].SongID)
	assert.Equal(t, "ARJIE2Y1187B994AB7", batch.Artists[0].ArtistID)
	assert.Equal(t, "SOMZWCG12A8C13C480", batch.Songs[1].SongID)
	assert.Equal(t, "ARD7TVE1187B99BFB1", batch.Artists[1].ArtistID)
	assert.Nil(t, batch.Artists[0].Latitude)
}

func TestSongTransformer_EmptyFile(t *testing.T) {
	_, err := NewSongTransformer().Transform(context.Background(), strings.NewReader("\n"), nil)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))
}

func TestSongTransformer_Malformed(t *testing.T) {
	batch, err := NewSongTransformer().Transform(context.Background(), strings.NewReader(`{"song_id":`), nil)
	assert.Nil(t, batch)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))
}

func TestLogTransformer_LoginOnlyYieldsNothing(t *testing.T) {
	cat := newCatalog()
	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(loginLine+"\n"), cat)
	require.NoError(t, err)

	assert.Empty(t, batch.Times)
	assert.Empty(t, batch.Users)
	assert.Empty(t, batch.Songplays)
	assert.Zero(t, cat.calls)
}

func TestLogTransformer_FiltersNonNextSong(t *testing.T) {
	input := strings.Join([]string{loginLine, nextSongLine, `{"page":"Home","ts":1541105830000,"userId":"39","level":"free","sessionId":38}`}, "\n")

	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(input), newCatalog())
	require.NoError(t, err)

	assert.Len(t, batch.Times, 1)
	assert.Len(t, batch.Users, 1)
	assert.Len(t, batch.Songplays, 1)
}

func TestLogTransformer_ResolvedSongplay(t *testing.T) {
	cat := newCatalog()
	cat.add("T", "N", "200", pgstar.SongRef{SongID: "S1", ArtistID: "A1"})

	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(nextSongLine), cat)
	require.NoError(t, err)
	require.Len(t, batch.Songplays, 1)

	sp := batch.Songplays[0]
	require.NotNil(t, sp.SongID)
	require.NotNil(t, sp.ArtistID)
	assert.Equal(t, "S1", *sp.SongID)
	assert.Equal(t, "A1", *sp.ArtistID)
	assert.Equal(t, int64(39), sp.UserID)
	assert.Equal(t, "free", sp.Level)
	assert.Equal(t, int64(38), sp.SessionID)
	assert.Equal(t, "Mozilla/5.0", sp.UserAgent)
	assert.Equal(t, "San Francisco-Oakland-Hayward, CA", sp.Location)
	assert.Equal(t, int64(1541105830796), sp.StartTime.UnixMilli())
	matched, missed := batch.Lookups()
	assert.Equal(t, 1, matched)
	assert.Zero(t, missed)

	assert.Equal(t, pgstar.User{UserID: 39, FirstName: "Walter", LastName: "Frye", Gender: "M", Level: "free"}, batch.Users[0])
	assert.Equal(t, sp.StartTime, batch.Times[0].StartTime)
}

func TestLogTransformer_UnresolvedSongplayHasNullIds(t *testing.T) {
	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(nextSongLine), newCatalog())
	require.NoError(t, err)
	require.Len(t, batch.Songplays, 1)

	assert.Nil(t, batch.Songplays[0].SongID)
	assert.Nil(t, batch.Songplays[0].ArtistID)
	_, missed := batch.Lookups()
	assert.Equal(t, 1, missed)
}

func TestLogTransformer_ReplayedEventsEachProduceFact(t *testing.T) {
	input := nextSongLine + "\n" + nextSongLine + "\n"

	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(input), newCatalog())
	require.NoError(t, err)
	assert.Len(t, batch.Songplays, 2)
	assert.Len(t, batch.Times, 2)
}

func TestLogTransformer_MalformedLineAbortsBeforeLookups(t *testing.T) {
	cat := newCatalog()
	input := nextSongLine + "\n{broken\n"

	batch, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(input), cat)
	assert.Nil(t, batch)
	assert.True(t, errors.Is(err, pgstar.ErrParseFailed))
	assert.Zero(t, cat.calls)
}

func TestLogTransformer_ResolverErrorPropagates(t *testing.T) {
	cat := newCatalog()
	cat.err = errors.New("connection reset")

	_, err := NewLogTransformer().Transform(context.Background(), strings.NewReader(nextSongLine), cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
