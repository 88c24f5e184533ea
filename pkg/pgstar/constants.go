package pgstar

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitDiscoveryError  = 12 // Data directory missing or not traversable
	ExitParseError      = 13 // Malformed JSON record
	ExitLoadError       = 14 // Insert or commit failed
)

const (
	// DefaultRetryInitialDelay is the default initial delay before the first connection retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection retries.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of connection retries.
	DefaultRetryMaxAttempts = 3

	// DefaultDatabase is used when no database name is resolved from any source.
	DefaultDatabase = "postgres"

	// DefaultPort is the PostgreSQL default port.
	DefaultPort = 5432

	// DataFilePattern is the glob matched against base names during discovery.
	DataFilePattern = "*.json"

	// NextSongPage is the page value of log events that represent a song playback.
	NextSongPage = "NextSong"

	// DefaultForceApprovalCountdown is how long --force waits before dropping tables.
	DefaultForceApprovalCountdown = 5 * time.Second

	// ApplicationNamePrefix prefixes the per-run application_name reported to PostgreSQL.
	ApplicationNamePrefix = "pgstar"
)
