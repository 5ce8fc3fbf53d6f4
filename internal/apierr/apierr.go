package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API operation. Every component above the API
// client branches on Kind only, never on raw status codes.
type Kind string

const (
	// KindNetwork means no response was received at all.
	KindNetwork Kind = "network"
	// KindServer covers 5xx responses. The server's own text is suppressed.
	KindServer Kind = "server"
	// KindValidation covers 422 responses carrying a field-error map.
	KindValidation Kind = "validation"
	// KindClient covers every other 4xx response.
	KindClient Kind = "client"
)

// Fixed user-facing messages for kinds where the raw server text is either
// absent or deliberately not shown.
const (
	networkMessage = "Unable to connect to the server. Please check your connection."
	serverMessage  = "Server error. Please try again later."
	clientFallback = "An error occurred. Please try again."
)

// Error is the single error shape consumed by everything above the API
// client. It is only constructed inside this package.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds the full per-field error map from a 422 response.
	// Message carries only the first entry as a display simplification.
	Fields map[string][]string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Field returns the first error message recorded for a field, or "".
func (e *Error) Field(name string) string {
	if msgs, ok := e.Fields[name]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Network creates a network-kind error wrapping the transport failure.
func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: networkMessage, Cause: cause}
}

// Server creates a server-kind error for a 5xx response.
func Server() *Error {
	return &Error{Kind: KindServer, Message: serverMessage}
}

// Validation creates a validation-kind error from a field-error map.
// The message is the first value of the first key; map iteration order is
// not stable in Go, so FirstField walks keys in sorted order to keep the
// chosen message deterministic.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: firstField(fields),
		Fields:  fields,
	}
}

// ValidationField creates a validation-kind error for a single field. Used
// for local, pre-network validation so callers see the same shape whether a
// draft was rejected locally or by the server.
func ValidationField(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  map[string][]string{field: {message}},
	}
}

// Client creates a client-kind error carrying the server-supplied message,
// or a generic fallback when the server sent none.
func Client(message string) *Error {
	if message == "" {
		message = clientFallback
	}
	return &Error{Kind: KindClient, Message: message}
}

// KindOf reports the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
