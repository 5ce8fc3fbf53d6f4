// Package exitcode maps failures onto process exit codes so scripts can
// branch on what went wrong without parsing messages.
package exitcode

import (
	"os"
	"strings"

	"github.com/userdeck/userdeck/internal/apierr"
)

const (
	// Success indicates successful execution.
	Success = 0
	// GeneralError indicates an unclassified failure.
	GeneralError = 1
	// UsageError indicates invalid command usage.
	UsageError = 2
	// AuthError indicates the caller is not (or no longer) authenticated.
	AuthError = 5
	// NetworkError indicates the server could not be reached.
	NetworkError = 6
	// ValidationError indicates the server or the client rejected a field.
	ValidationError = 7
	// ServerError indicates a 5xx from the API host.
	ServerError = 8
	// Interrupted indicates the user cancelled the operation.
	Interrupted = 130
)

// Exit terminates the program with the given exit code.
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with the code Determine picks for err.
func ExitWithError(err error) {
	Exit(Determine(err))
}

// Determine maps an error onto an exit code by its normalized kind.
// Errors that never passed through the normalizer are classified by
// message.
func Determine(err error) int {
	if err == nil {
		return Success
	}

	if kind, ok := apierr.KindOf(err); ok {
		switch kind {
		case apierr.KindNetwork:
			return NetworkError
		case apierr.KindServer:
			return ServerError
		case apierr.KindValidation:
			return ValidationError
		default:
			return GeneralError
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not logged in"),
		strings.Contains(msg, "requires the admin role"),
		strings.Contains(msg, "unauthorized"):
		return AuthError
	case strings.Contains(msg, "unknown command"),
		strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "is required"),
		strings.Contains(msg, "accepts 1 arg"):
		return UsageError
	default:
		return GeneralError
	}
}
