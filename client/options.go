package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rosette-api/rosette-go/client/internal/api"
)

// Option configures a Client during construction in New.
//
// Options are applied in order and before the API-key transport wrapper is
// installed, so transport-related options (like debug logging) end up
// underneath it. WithHTTPClient replaces the transport, so pass it first.
type Option func(*Client) error

// WithServiceURL overrides DefaultServiceURL. The URL must be absolute http(s).
func WithServiceURL(serviceURL string) Option {
	return func(c *Client) error {
		u := normalizeServiceURL(serviceURL)
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("invalid service url %q: %w", serviceURL, err)
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("invalid service url %q: must be an absolute http(s) URL", serviceURL)
		}
		c.serviceURL = u
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds a single HTTP exchange. Expiry surfaces as a
// TransportError. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. The API key is redacted from the dumps.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithRetry retries transport errors and 408/429/5xx responses with
// exponential backoff, up to maxAttempts attempts in total. Zero intervals
// keep the backoff library defaults. Without this option every call is
// single-shot.
func WithRetry(maxAttempts int, initialInterval, maxInterval time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("max attempts must be >= 1")
		}
		c.retry = api.RetryPolicy{
			MaxAttempts:     maxAttempts,
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
		}
		return nil
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// Waiting past the caller's deadline fails the call with a TransportError.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return fmt.Errorf("rate limit must be > 0")
		}
		if burst < 1 {
			return fmt.Errorf("rate burst must be >= 1")
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithExecutor sizes the worker pool used by Go: shards workers, each with a
// queue of queueSize pending calls.
func WithExecutor(shards, queueSize int) Option {
	return func(c *Client) error {
		if shards < 1 || queueSize < 1 {
			return fmt.Errorf("shards and queue size must be >= 1")
		}
		c.execCfg.Shards = shards
		c.execCfg.QueueSize = queueSize
		return nil
	}
}
