package api

import (
	"net/http"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// countingRT records how many requests reached the transport.
type countingRT struct {
	calls int32
	fn    func(*http.Request) (*http.Response, error)
}

func (c *countingRT) RoundTrip(r *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.fn(r)
}

func (c *countingRT) count() int { return int(atomic.LoadInt32(&c.calls)) }

func newInvoker(hc *http.Client, baseURL string) *Invoker {
	return &Invoker{HTTP: resty.NewWithClient(hc), BaseURL: baseURL}
}
