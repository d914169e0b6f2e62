package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Call is one asynchronous invocation started by Go.
type Call struct {
	// ID identifies the call in logs and picks its worker shard.
	ID        string
	Operation Operation

	once   sync.Once
	done   chan struct{}
	result Result
}

func newCall(op Operation) *Call {
	return &Call{
		ID:        uuid.NewString(),
		Operation: op,
		done:      make(chan struct{}),
	}
}

// complete records r unless a result was already delivered. It reports
// whether r was the one kept.
func (c *Call) complete(r Result) bool {
	delivered := false
	c.once.Do(func() {
		c.result = r
		delivered = true
		close(c.done)
	})
	return delivered
}

// Done is closed once the result is available.
func (c *Call) Done() <-chan struct{} { return c.done }

// Result blocks until the call completes and returns its outcome.
func (c *Call) Result() Result {
	<-c.done
	return c.result
}

// Wait blocks until the call completes or ctx ends. Giving up on waiting does
// not cancel the call; cancel the context passed to Go for that.
func (c *Call) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-c.done:
		return c.result.Response, c.result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
