package pgstar

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of a load run.
// Callers distinguish them with errors.Is().
//
//	err := pipeline.Run(ctx, cfg)
//	if errors.Is(err, pgstar.ErrParseFailed) {
//	    // a data file is malformed; files before it are committed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDiscoveryFailed indicates a data root is missing or not traversable.
	ErrDiscoveryFailed = errors.New("discovery failed")

	// ErrParseFailed indicates a data file contains a malformed or incomplete record.
	ErrParseFailed = errors.New("parse failed")

	// ErrLoadFailed indicates an insert or commit was rejected by the store.
	ErrLoadFailed = errors.New("load failed")

	// ErrApprovalDenied indicates the user declined a destructive operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrUsage indicates invalid command-line arguments or flags.
	ErrUsage = errors.New("usage error")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrDiscoveryFailed):
		return ExitDiscoveryError
	case errors.Is(err, ErrParseFailed):
		return ExitParseError
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadError
	}

	// Connection errors raised before classification (e.g. pool parse) still
	// deserve the connection exit code.
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

// usagePatterns match the argument and flag errors cobra returns unwrapped.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}
