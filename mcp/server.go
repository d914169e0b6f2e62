// Package mcp serves the Rosette operations as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rosette-api/rosette-go/client"
	"github.com/rosette-api/rosette-go/internal/config"
	"github.com/rosette-api/rosette-go/internal/health"
	"github.com/rosette-api/rosette-go/internal/logger"
	"github.com/rosette-api/rosette-go/mcp/internal/handlers"
)

// ErrMissingAPIKey is returned when neither ROSETTE_API_KEY nor -key is set.
var ErrMissingAPIKey = errors.New("ROSETTE_API_KEY (or -key) is required")

// loadConfig reads ROSETTE_* variables; command line flags override them.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("rosette-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cfg.APIKey, "key", cfg.APIKey, "Rosette API key")
	fs.StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "Base URL of the Rosette API")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	fs.StringVar(&cfg.MCPListenAddr, "listen", cfg.MCPListenAddr, "Listen address for the streamable HTTP transport")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, cfg.Validate()
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with every Rosette tool registered.
func NewServer(name, version string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	for _, h := range []struct {
		name    string
		handler toolRegisterer
	}{
		{"document", handlers.NewDocumentHandler(c)},
		{"morphology", handlers.NewMorphologyHandler(c)},
		{"name", handlers.NewNameHandler(c)},
		{"service", handlers.NewServiceHandler(c)},
	} {
		if err := h.handler.RegisterTools(s); err != nil {
			log.Error().Err(err).Str("handler", h.name).Msg("Failed to register tools")
			return nil, err
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server over stdio or streamable HTTP and blocks
// until it exits.
func RunMCPServer() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	logger.InitJSON(cfg.MCPServerName, cfg.Level())

	rosetteClient, err := client.New(cfg.APIKey, cfg.ClientOptions()...)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Str("service_url", rosetteClient.ServiceURL()).Msg("Client created successfully")

	s, err := NewServer(cfg.MCPServerName, cfg.MCPServerVersion, rosetteClient)
	if err != nil {
		_ = rosetteClient.Close()
		return err
	}

	if shouldUseStdio() {
		// Stdio transport (launched by an agent host)
		log.Info().Msg("Starting Rosette MCP server (stdio transport)")
		defer func() { _ = rosetteClient.Close() }()
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s, rosetteClient)
}

func serveHTTP(cfg *config.Config, s *server.MCPServer, rosetteClient *client.Client) error {
	log.Info().Str("addr", cfg.MCPListenAddr).Str("path", cfg.MCPEndpointPath).Msg("Starting Rosette MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(cfg.MCPEndpointPath),
		server.WithHeartbeatInterval(30*time.Second),
	)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	svcHealth := startHealthCheckers(healthCtx, cfg, rosetteClient)

	srv := &http.Server{
		Addr:         cfg.MCPListenAddr,
		Handler:      buildRouter(cfg.MCPEndpointPath, streamSrv, svcHealth),
		ReadTimeout:  cfg.MCPReadTimeout,
		WriteTimeout: 0, // SSE streams have no write deadline
		IdleTimeout:  cfg.MCPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MCPShutdownTimeout)
		defer cancel()

		stopHealth()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
		// Drains calls still queued on the worker pool.
		if err := rosetteClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Rosette client")
		}
		log.Info().Msg("Shutdown complete")
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server error")
		_ = rosetteClient.Close()
		return err
	}

	<-shutdownComplete
	return nil
}

// buildRouter mounts the MCP endpoint next to /healthz and /metrics.
func buildRouter(endpointPath string, mcpHandler http.Handler, svcHealth *health.ServiceHealthChecker) *mux.Router {
	root := mux.NewRouter()
	root.Handle(endpointPath, mcpHandler)
	root.HandleFunc("/healthz", health.Handler(svcHealth)).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return root
}

// startHealthCheckers pings the API every HealthInterval and aggregates the result.
func startHealthCheckers(ctx context.Context, cfg *config.Config, rosetteClient *client.Client) *health.ServiceHealthChecker {
	apiChecker := health.NewPingChecker("rosette_api", rosetteClient, log.Logger, cfg.HealthProbeTimeout)
	go apiChecker.Start(ctx, cfg.HealthInterval)

	svcHealth := health.NewServiceHealthChecker(log.Logger, apiChecker)
	go svcHealth.Start(ctx, cfg.HealthInterval)
	return svcHealth
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Auto-detect: use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
