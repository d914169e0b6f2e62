package client

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/rosette-api/rosette-go/client/internal/errors"
	"github.com/rosette-api/rosette-go/client/internal/shardqueue"
)

// Error taxonomy re-exported so callers only import the client package.
type (
	// ValidationError reports a missing or conflicting parameter; no request was sent.
	ValidationError = apierrors.ValidationError
	// TransportError wraps a network-level failure; Unwrap yields the cause.
	TransportError = apierrors.TransportError
	// APIError reports a response with status >= 400.
	APIError = apierrors.APIError
)

var (
	// ErrMissingAPIKey is returned by New when the key is empty.
	ErrMissingAPIKey = errors.New("api key cannot be empty")

	// ErrUnknownOperation is returned for an operation with no descriptor.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrBackPressure is returned when the client's internal shard queue is full.
	ErrBackPressure = errors.New("back-pressure (queue full)")

	// ErrClientClosed is returned by Go after Close.
	ErrClientClosed = errors.New("client closed")
)

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransport reports whether err is a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAPI reports whether err is an *APIError.
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// StatusCode returns the HTTP status carried by an *APIError, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

func cancellationError(op Operation, cause error) error {
	return apierrors.NewTransportError(string(op), cause)
}

// submitError maps executor failures onto the client's error surface.
func submitError(op Operation, err error) error {
	switch {
	case errors.Is(err, shardqueue.ErrQueueFull):
		return fmt.Errorf("%w: %v", ErrBackPressure, err)
	case errors.Is(err, shardqueue.ErrExecutorClosed):
		return ErrClientClosed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return cancellationError(op, err)
	default:
		return err
	}
}
