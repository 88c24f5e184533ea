package records

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// LogEvent is one line of an event-log file.
// Playback fields are only required on NextSong events; navigation events
// (Home, Login, Logout, ...) routinely carry nulls there.
type LogEvent struct {
	TS        *int64   `json:"ts" validate:"required"`
	Page      string   `json:"page" validate:"required"`
	Song      *string  `json:"song" validate:"required_if=Page NextSong"`
	Artist    *string  `json:"artist" validate:"required_if=Page NextSong"`
	Length    *float64 `json:"length" validate:"required_if=Page NextSong"`
	UserID    UserID   `json:"userId" validate:"required_if=Page NextSong"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Gender    string   `json:"gender"`
	Level     string   `json:"level" validate:"required_if=Page NextSong"`
	SessionID *int64   `json:"sessionId" validate:"required_if=Page NextSong"`
	UserAgent string   `json:"userAgent"`
	Location  string   `json:"location"`
}

// IsNextSong reports whether the event is a song playback.
func (e *LogEvent) IsNextSong() bool {
	return e.Page == pgstar.NextSongPage
}

// UserID accepts both "39" and 39. Logged-out events carry "", which leaves
// Valid false; 0 is a real id.
type UserID struct {
	ID    int64
	Valid bool
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	*u = UserID{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		data = []byte(s)
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("userId %s is not an integer", data)
	}
	*u = UserID{ID: n, Valid: true}
	return nil
}
