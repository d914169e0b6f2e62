package api

import (
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/rosette-api/rosette-go/client/internal/types"
)

// Invoker issues requests for operation descriptors. It holds no per-call
// state and is safe for concurrent use.
type Invoker struct {
	HTTP    *resty.Client
	BaseURL string
	Retry   RetryPolicy
	// Limiter, when set, is waited on before every attempt.
	Limiter *rate.Limiter
}

// RetryPolicy controls retries of recoverable failures. The zero value means
// a single attempt.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Request is a validated call whose parameters have been snapshotted.
type Request struct {
	Descriptor types.Descriptor
	Payload    json.RawMessage
}
