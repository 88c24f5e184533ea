package store

// Statements queued per file. Placeholders follow the column order of the
// matching row type in pkg/pgstar.
const (
	insertSong = `
		INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (song_id) DO NOTHING`

	insertArtist = `
		INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO NOTHING`

	insertTime = `
		INSERT INTO time (start_time, time_of_day, hour, day, week, month, year, weekday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (start_time) DO NOTHING`

	// Only the level follows the latest event; names and gender keep their
	// first-seen values.
	upsertUser = `
		INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET level = EXCLUDED.level`

	insertSongplay = `
		INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// Parameters: $1 title, $2 artist name, $3 duration.
	selectSongRef = `
		SELECT s.song_id, a.artist_id
		FROM songs s
		JOIN artists a ON s.artist_id = a.artist_id
		WHERE s.title = $1 AND a.name = $2 AND s.duration = $3
		ORDER BY s.song_id
		LIMIT 1`
)
