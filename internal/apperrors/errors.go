// Package apperrors defines the error taxonomy shared by every twctl command
// and the exit codes each class maps to.
package apperrors

import (
	"errors"
)

// These sentinel errors define the application-level error classes.
// They are checked with errors.Is after being wrapped with fmt.Errorf("%w").
var (
	// ErrNotFound indicates the identifier does not exist remotely (or locally, for lookups).
	ErrNotFound = errors.New("not found")
	// ErrAuth indicates bad or missing credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrRateLimited indicates remote throttling.
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout indicates a remote call exceeded the configured timeout.
	ErrTimeout = errors.New("operation timeout")
	// ErrRemote indicates any other remote failure (5xx, transport, decode).
	ErrRemote = errors.New("remote call failed")
	// ErrParse indicates malformed local input such as a call log file.
	ErrParse = errors.New("parse error")
	// ErrValidation indicates a bad CLI argument or field value.
	ErrValidation = errors.New("validation failed")
	// ErrUsage indicates an unknown command, index, or wrong argument count.
	ErrUsage = errors.New("usage error")
	// ErrCancelled indicates the operator declined a confirmation.
	ErrCancelled = errors.New("cancelled")
	// ErrPartial indicates a report completed with some sections unavailable.
	ErrPartial = errors.New("partial result")
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitPartial = 3
)

// IsNotFoundError checks if the error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthError checks if the error is or wraps ErrAuth.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsRateLimitedError checks if the error is or wraps ErrRateLimited.
func IsRateLimitedError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeoutError checks if the error is or wraps ErrTimeout.
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsParseError checks if the error is or wraps ErrParse.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsValidationError checks if the error is or wraps ErrValidation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUsageError checks if the error is or wraps ErrUsage.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage)
}

// IsCancelled checks if the error is or wraps ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsLocalInputError reports whether err belongs to the local input classes
// (parse, validation, usage), which are always recoverable at the command boundary.
func IsLocalInputError(err error) bool {
	return IsParseError(err) || IsValidationError(err) || IsUsageError(err)
}

// ExitCode maps an error returned by a command to the process exit status.
// A cancelled confirmation is a user-initiated abort and exits 0.
func ExitCode(err error) int {
	switch {
	case err == nil, IsCancelled(err):
		return ExitOK
	case errors.Is(err, ErrPartial):
		return ExitPartial
	case IsLocalInputError(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Hint returns operator guidance for an error class, or "" when there is none.
func Hint(err error) string {
	switch {
	case IsAuthError(err):
		return "check TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN"
	case IsRateLimitedError(err):
		return "Twilio is throttling requests; wait and run the command again"
	case IsTimeoutError(err):
		return "the request timed out; raise --timeout or check connectivity"
	case IsUsageError(err):
		return "run 'twctl index' to list numbered commands or 'twctl --help'"
	case IsParseError(err):
		return "expected a CSV or XLSX file with timestamp, from, to, duration, status and direction columns"
	default:
		return ""
	}
}
