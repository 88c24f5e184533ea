package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample records shaped like the song-metadata and event-log datasets.
const (
	SongLine = `{"num_songs":1,"artist_id":"A1","artist_latitude":1.0,"artist_longitude":2.0,"artist_location":"L","artist_name":"N","song_id":"S1","title":"T","duration":200.0,"year":2000}`

	OtherSongLine = `{"num_songs":1,"artist_id":"ARD7TVE1187B99BFB1","artist_latitude":null,"artist_longitude":null,"artist_location":"California - LA","artist_name":"Casual","song_id":"SOMZWCG12A8C13C480","title":"I Didn't Mean To","duration":218.93179,"year":0}`

	NextSongLine = `{"artist":"N","auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":0,"lastName":"Frye","length":200.0,"level":"free","location":"San Francisco-Oakland-Hayward, CA","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":38,"song":"T","status":200,"ts":1541105830796,"userAgent":"Mozilla/5.0","userId":"39"}`

	PaidNextSongLine = `{"artist":"Unknown Band","auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":1,"lastName":"Frye","length":123.4,"level":"paid","location":"San Francisco-Oakland-Hayward, CA","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":38,"song":"Unknown","status":200,"ts":1541106106796,"userAgent":"Mozilla/5.0","userId":"39"}`

	LoginLine = `{"artist":null,"auth":"Logged Out","firstName":null,"gender":null,"itemInSession":0,"lastName":null,"length":null,"level":"free","location":null,"method":"PUT","page":"Login","registration":null,"sessionId":52,"song":null,"status":307,"ts":1541207073796,"userAgent":null,"userId":""}`
)

// WriteDataTree writes files (relative path -> content) under a fresh
// temporary directory and returns its path.
func WriteDataTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return root
}
