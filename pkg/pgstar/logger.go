package pgstar

// Logger receives the progress and diagnostic lines of a load.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose lines are printed only with -v.
	Verbose(format string, args ...interface{})

	// Info carries the normal progress output ("N files found in ROOT").
	Info(format string, args ...interface{})

	Error(format string, args ...interface{})
}
