// Package config loads the settings shared by the rosette CLI and the MCP
// server from ROSETTE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rosette-api/rosette-go/client"
)

// Prefix is prepended to every variable name, e.g. ROSETTE_SERVICE_URL.
const Prefix = "ROSETTE"

// Config holds client and MCP server settings.
type Config struct {
	APIKey     string        `envconfig:"API_KEY"`
	ServiceURL string        `envconfig:"SERVICE_URL" default:"https://api.rosette.com/rest/v1"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug      bool          `envconfig:"DEBUG" default:"false"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`

	// Retry and throttling; MaxAttempts 1 means single-shot, RateLimit 0 disables the limiter.
	MaxAttempts          int           `envconfig:"MAX_ATTEMPTS" default:"1"`
	RetryInitialInterval time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"500ms"`
	RetryMaxInterval     time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"10s"`
	RateLimit            float64       `envconfig:"RATE_LIMIT" default:"0"`
	RateBurst            int           `envconfig:"RATE_BURST" default:"1"`

	// Async worker pool
	Shards    int `envconfig:"SHARDS" default:"8"`
	QueueSize int `envconfig:"QUEUE_SIZE" default:"1000"`

	// MCP server
	MCPServerName      string        `envconfig:"MCP_SERVER_NAME" default:"rosette-mcp-server"`
	MCPServerVersion   string        `envconfig:"MCP_SERVER_VERSION" default:"1.0.0"`
	MCPListenAddr      string        `envconfig:"MCP_LISTEN_ADDR" default:":11546"`
	MCPEndpointPath    string        `envconfig:"MCP_ENDPOINT_PATH" default:"/mcp"`
	MCPShutdownTimeout time.Duration `envconfig:"MCP_SHUTDOWN_TIMEOUT" default:"10s"`
	MCPReadTimeout     time.Duration `envconfig:"MCP_READ_TIMEOUT" default:"5s"`
	MCPIdleTimeout     time.Duration `envconfig:"MCP_IDLE_TIMEOUT" default:"120s"`

	// Health probing of the API while serving over HTTP
	HealthInterval     time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`
	HealthProbeTimeout time.Duration `envconfig:"HEALTH_PROBE_TIMEOUT" default:"5s"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment and then calls New. Missing files are ignored and
// variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Debug().Str("file", f).Err(err).Msg("dotenv file not loaded")
		}
	}
	return New()
}

// New creates a Config by parsing ROSETTE_* environment variables.
// Example: ROSETTE_SERVICE_URL, ROSETTE_MAX_ATTEMPTS.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("service_url", cfg.ServiceURL).
		Dur("timeout", cfg.Timeout).
		Int("max_attempts", cfg.MaxAttempts).
		Float64("rate_limit", cfg.RateLimit).
		Int("shards", cfg.Shards).
		Bool("api_key_present", cfg.APIKey != "").
		Msg("configuration loaded")

	return &cfg, nil
}

// Validate rejects values the client options would refuse.
func (c *Config) Validate() error {
	switch {
	case c.ServiceURL == "":
		return fmt.Errorf("SERVICE_URL cannot be empty")
	case c.Timeout <= 0:
		return fmt.Errorf("TIMEOUT must be > 0, got %s", c.Timeout)
	case c.MaxAttempts < 1:
		return fmt.Errorf("MAX_ATTEMPTS must be >= 1, got %d", c.MaxAttempts)
	case c.RateLimit < 0:
		return fmt.Errorf("RATE_LIMIT must be >= 0, got %v", c.RateLimit)
	case c.RateLimit > 0 && c.RateBurst < 1:
		return fmt.Errorf("RATE_BURST must be >= 1, got %d", c.RateBurst)
	case c.Shards < 1 || c.QueueSize < 1:
		return fmt.Errorf("SHARDS and QUEUE_SIZE must be >= 1")
	case c.HealthInterval <= 0:
		return fmt.Errorf("HEALTH_INTERVAL must be > 0, got %s", c.HealthInterval)
	}
	return nil
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithServiceURL(c.ServiceURL),
		client.WithHTTPTimeout(c.Timeout),
		client.WithExecutor(c.Shards, c.QueueSize),
	}
	if c.MaxAttempts > 1 {
		opts = append(opts, client.WithRetry(c.MaxAttempts, c.RetryInitialInterval, c.RetryMaxInterval))
	}
	if c.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(c.RateLimit, c.RateBurst))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	return ParseLogLevel(c.LogLevel)
}

// ParseLogLevel maps debug|info|warn|error to a zerolog level; anything else is info.
func ParseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
