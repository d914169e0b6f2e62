package types

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the successful outcome of one operation.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is the raw JSON document returned by the service.
	Body json.RawMessage
	// Data is Body parsed into generic JSON values; nil for an empty body.
	Data any
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// Result is the outcome of one invoked operation. Exactly one of Response
// and Err is non-nil.
type Result struct {
	Response *Response
	Err      error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }
