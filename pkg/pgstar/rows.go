package pgstar

import "time"

// Song is a row of the songs dimension. Keyed by SongID; never overwritten.
type Song struct {
	SongID   string
	Title    string
	ArtistID string
	Year     int
	Duration float64
}

// Artist is a row of the artists dimension. Keyed by ArtistID; never overwritten.
// Location, Latitude and Longitude are often absent in the source data.
type Artist struct {
	ArtistID  string
	Name      string
	Location  *string
	Latitude  *float64
	Longitude *float64
}

// TimeRow is the calendar decomposition of one event timestamp.
// All fields are functionally determined by StartTime (UTC).
type TimeRow struct {
	StartTime time.Time
	TimeOfDay time.Duration // since midnight
	Hour      int
	Day       int
	Week      int // ISO-8601 week number
	Month     int
	Year      int
	Weekday   int // 0 = Monday … 6 = Sunday
}

// User is a row of the users dimension. Level is overwritten on conflict.
type User struct {
	UserID    int64
	FirstName string
	LastName  string
	Gender    string
	Level     string
}

// Songplay is one fact row per NextSong event.
// SongID and ArtistID are both nil when the lookup found no matching pair.
type Songplay struct {
	StartTime time.Time
	UserID    int64
	Level     string
	SongID    *string
	ArtistID  *string
	SessionID int64
	UserAgent string
	Location  string
}

// SongRef identifies a matched song/artist pair.
type SongRef struct {
	SongID   string
	ArtistID string
}

// Batch holds every row produced from one data file, in emission order.
type Batch struct {
	Songs     []Song
	Artists   []Artist
	Times     []TimeRow
	Users     []User
	Songplays []Songplay
}

// Len returns the number of rows in the batch across all tables.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Songs) + len(b.Artists) + len(b.Times) + len(b.Users) + len(b.Songplays)
}

// Lookups tallies the songplays whose song was found in the catalog and
// those left with null ids.
func (b *Batch) Lookups() (matched, missed int) {
	if b == nil {
		return 0, 0
	}
	for _, sp := range b.Songplays {
		if sp.SongID != nil {
			matched++
		} else {
			missed++
		}
	}
	return matched, missed
}

// RowCounts reports rows affected per table. Rows ignored by
// ON CONFLICT DO NOTHING are not counted.
type RowCounts struct {
	Songs     int64
	Artists   int64
	Times     int64
	Users     int64
	Songplays int64
}

// Add accumulates other into c.
func (c *RowCounts) Add(other RowCounts) {
	c.Songs += other.Songs
	c.Artists += other.Artists
	c.Times += other.Times
	c.Users += other.Users
	c.Songplays += other.Songplays
}

// Total returns the sum over all tables.
func (c RowCounts) Total() int64 {
	return c.Songs + c.Artists + c.Times + c.Users + c.Songplays
}
