package errors

import (
	"encoding/json"
	"fmt"
)

// statusCategory maps HTTP status codes to error categories:
//   - 4xx client errors (except 408 and 429) are irrecoverable
//   - 5xx server errors are recoverable
func statusCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Irrecoverable
	}
}

// errorBody is the JSON error document returned by the service.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAPIError builds an APIError from a non-2xx response. The service's
// structured error body is used when it parses; otherwise the raw body is
// kept and a generic message is used.
func NewAPIError(operation string, statusCode int, body []byte) *APIError {
	e := &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       string(body),
	}
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Code = eb.Code
		e.Message = eb.Message
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("%s failed: HTTP %d", operation, statusCode)
	}
	return e
}

// NewTransportError creates an error for network-level failures.
func NewTransportError(operation string, err error) *TransportError {
	return &TransportError{Operation: operation, Cause: err}
}
