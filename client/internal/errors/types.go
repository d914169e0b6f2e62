// Package errors provides the error taxonomy of the client SDK and the
// classification the retry policy relies on.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 503 Service Unavailable, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 400 Bad Request, a missing parameter.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ValidationError reports parameters rejected locally, before any request was sent.
type ValidationError struct {
	Operation   string
	Missing     []string // first alternative of every unmet requirement group
	Conflicting []string // keys that may not be supplied together
	Cause       error    // set when the parameters could not be encoded
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required parameter(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.Conflicting) > 0 {
		parts = append(parts, "mutually exclusive parameters supplied: "+strings.Join(e.Conflicting, ", "))
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	if len(parts) == 0 {
		parts = append(parts, "invalid parameters")
	}
	return fmt.Sprintf("%s: %s", e.Operation, strings.Join(parts, "; "))
}

// Unwrap returns the encoding error, if any.
func (e *ValidationError) Unwrap() error { return e.Cause }

// TransportError wraps a network-level failure: DNS, refused connections,
// timeouts, cancellation or an unreadable response body.
type TransportError struct {
	Operation string
	Cause     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error { return e.Cause }

// APIError is returned when the service answered with a status >= 400.
type APIError struct {
	Operation  string
	StatusCode int
	Code       string // service error code, when the body carried one
	Message    string
	Body       string // raw response body for debugging
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: HTTP %d (%s): %s", e.Operation, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.StatusCode, msg)
}

// Category classifies err for the retry policy. Unknown errors are treated as
// irrecoverable so that nothing is retried by accident.
func Category(err error) ErrorCategory {
	var te *TransportError
	if stderrors.As(err, &te) {
		return Recoverable
	}
	var ae *APIError
	if stderrors.As(err, &ae) {
		return statusCategory(ae.StatusCode)
	}
	return Irrecoverable
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	return Category(err) == Irrecoverable
}
