// Package transform implements the two record transformers of a load run.
//
// SongTransformer turns a song-metadata file into songs and artists rows.
// LogTransformer keeps NextSong events of an event-log file and turns each
// into a time row, a user row, and a songplay fact whose song and artist ids
// are resolved through a pgstar.SongResolver.
//
// Calendar fields are derived in UTC. Week is the ISO-8601 week number and
// weekday counts from Monday = 0 to Sunday = 6.
package transform
