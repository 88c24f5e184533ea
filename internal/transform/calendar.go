package transform

import (
	"time"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// FromEpochMillis converts a millisecond Unix timestamp to a UTC time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Decompose derives the time-dimension row for ts.
func Decompose(ts time.Time) pgstar.TimeRow {
	ts = ts.UTC()
	_, week := ts.ISOWeek()
	midnight := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)

	return pgstar.TimeRow{
		StartTime: ts,
		TimeOfDay: ts.Sub(midnight),
		Hour:      ts.Hour(),
		Day:       ts.Day(),
		Week:      week,
		Month:     int(ts.Month()),
		Year:      ts.Year(),
		Weekday:   MondayWeekday(ts.Weekday()),
	}
}

// MondayWeekday maps time.Weekday (Sunday = 0) to Monday = 0 … Sunday = 6.
func MondayWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
