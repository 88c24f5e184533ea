package records

// SongRecord is one line of a song-metadata file.
// Pointer fields distinguish an absent value from a zero value:
// year 0 and an empty title are legitimate, a missing year or title is not.
type SongRecord struct {
	SongID          string   `json:"song_id" validate:"required"`
	Title           *string  `json:"title" validate:"required"`
	ArtistID        string   `json:"artist_id" validate:"required"`
	Year            *int     `json:"year" validate:"required"`
	Duration        *float64 `json:"duration" validate:"required"`
	ArtistName      *string  `json:"artist_name" validate:"required"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}
