// Package client is the Go SDK for the Rosette text-analytics API.
//
// A Client holds the API key and service URL and exposes one method per
// operation. Methods are synchronous; Go and GoFunc run a call on the
// client's worker pool and deliver exactly one Result.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/rosette-api/rosette-go/client/internal/api"
	"github.com/rosette-api/rosette-go/client/internal/shardqueue"
	"github.com/rosette-api/rosette-go/client/internal/types"
)

const (
	// DefaultServiceURL is used when WithServiceURL is not given.
	DefaultServiceURL = "https://api.rosette.com/rest/v1"

	// Version is sent in the X-RosetteAPI-Binding-Version header.
	Version = "1.0.0"

	apiKeyHeader         = "X-RosetteAPI-Key"
	bindingHeader        = "X-RosetteAPI-Binding"
	bindingVersionHeader = "X-RosetteAPI-Binding-Version"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	serviceURL string
	apiKey     string
	http       *http.Client
	invoker    *api.Invoker
	exec       executor

	// collected by options, consumed by New
	execCfg shardqueue.Config
	retry   api.RetryPolicy
	limiter *rate.Limiter

	closedOnce uint32 // ensures Close is idempotent
	closed     uint32
}

// New constructs a Client authenticating with apiKey. The service URL
// defaults to DefaultServiceURL; see the With* options for other knobs.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		serviceURL: DefaultServiceURL,
		apiKey:     apiKey,
		http:       &http.Client{Timeout: 30 * time.Second},
		execCfg:    shardqueue.Config{Shards: 8, QueueSize: 1000},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransportWithAPIKey()

	rc := resty.NewWithClient(c.http).
		SetLogger(restyLogger{}).
		SetHeader("User-Agent", "rosette-go/"+Version)
	c.invoker = &api.Invoker{
		HTTP:    rc,
		BaseURL: c.serviceURL,
		Retry:   c.retry,
		Limiter: c.limiter,
	}

	if c.exec == nil {
		c.exec = newDefaultExecutor(c.execCfg)
	}
	return c, nil
}

// ServiceURL returns the base URL requests are sent to.
func (c *Client) ServiceURL() string { return c.serviceURL }

// wrapTransportWithAPIKey wraps the HTTP client's transport so every request
// carries the API key and binding headers.
func (c *Client) wrapTransportWithAPIKey() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{
		base:   baseTransport,
		apiKey: c.apiKey,
	}
}

// apiKeyTransport wraps an http.RoundTripper to add the authentication headers.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set(apiKeyHeader, t.apiKey)
	cloned.Header.Set(bindingHeader, "go")
	cloned.Header.Set(bindingVersionHeader, Version)
	return t.base.RoundTrip(cloned)
}

// Close stops the worker pool after running every call already queued.
// Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	atomic.StoreUint32(&c.closed, 1)
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// newDefaultExecutor constructs the shardqueue executor that runs async calls.
func newDefaultExecutor(cfg shardqueue.Config) *shardqueue.ShardExecutor {
	cfg.ErrorHandler = func(err error) {
		log.Debug().Err(err).Msg("async call finished with error")
	}
	return shardqueue.NewShardExecutor(cfg)
}

// --------------------------------------------------------------------
// Invocation
// --------------------------------------------------------------------

// Invoke runs op synchronously.
func (c *Client) Invoke(ctx context.Context, op Operation, params *Parameters) (*Response, error) {
	d, ok := types.Lookup(op)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	start := time.Now()
	resp, err := c.invoker.Invoke(ctx, d, params)
	observeCall(op, start, err)
	return resp, err
}

// Go starts op on the client's worker pool and returns immediately. params
// is validated and snapshotted before Go returns, so the caller may reuse it.
//
// The returned Call completes exactly once: with the response, with the
// failure, or with a TransportError wrapping ctx.Err() if ctx ends first.
func (c *Client) Go(ctx context.Context, op Operation, params *Parameters) *Call {
	call := newCall(op)

	d, ok := types.Lookup(op)
	if !ok {
		call.complete(Result{Err: fmt.Errorf("%w: %q", ErrUnknownOperation, op)})
		return call
	}
	req, err := api.Prepare(d, params)
	if err != nil {
		observeCall(op, time.Now(), err)
		call.complete(Result{Err: err})
		return call
	}
	if atomic.LoadUint32(&c.closed) == 1 {
		call.complete(Result{Err: ErrClientClosed})
		return call
	}

	stop := context.AfterFunc(ctx, func() {
		call.complete(Result{Err: cancellationError(op, ctx.Err())})
	})

	job := shardqueue.JobFunc(func(jobCtx context.Context) error {
		defer stop()
		start := time.Now()
		resp, err := c.invoker.Send(jobCtx, req)
		observeCall(op, start, err)
		if err != nil {
			call.complete(Result{Err: err})
		} else {
			call.complete(Result{Response: resp})
		}
		return err
	})

	if err := c.exec.Submit(ctx, call.ID, job); err != nil {
		stop()
		call.complete(Result{Err: submitError(op, err)})
		return call
	}
	asyncCallsEnqueuedTotal.WithLabelValues(string(op)).Inc()
	return call
}

// GoFunc is the callback form of Go: fn is invoked exactly once, on its own
// goroutine, with the call's Result.
func (c *Client) GoFunc(ctx context.Context, op Operation, params *Parameters, fn func(Result)) *Call {
	call := c.Go(ctx, op, params)
	go func() {
		<-call.Done()
		fn(call.Result())
	}()
	return call
}

// normalizeServiceURL trims whitespace and trailing slashes.
func normalizeServiceURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
