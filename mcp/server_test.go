package mcp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/rosette-api/rosette-go/client"
	"github.com/rosette-api/rosette-go/internal/health"
)

func TestLoadConfig_RequiresKey(t *testing.T) {
	t.Setenv("ROSETTE_API_KEY", "")
	if _, err := loadConfig(nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ROSETTE_API_KEY", "env-key")
	cfg, err := loadConfig([]string{"-service-url", "http://localhost:9999", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIKey != "env-key" || cfg.ServiceURL != "http://localhost:9999" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestShouldUseStdio_EnvOverrides(t *testing.T) {
	t.Setenv("MCP_STDIO", "true")
	if !shouldUseStdio() {
		t.Fatalf("MCP_STDIO=true should force stdio")
	}
	t.Setenv("MCP_STDIO", "")
	t.Setenv("MCP_HTTP", "true")
	if shouldUseStdio() {
		t.Fatalf("MCP_HTTP=true should force HTTP")
	}
}

// TestServerTransports lists and calls tools over the in-process and
// streamable HTTP transports.
func TestServerTransports(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"message":"Rosette API at your service"}`)
	}))
	defer api.Close()

	sdk, err := client.New("k", client.WithHTTPClient(api.Client()), client.WithServiceURL(api.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	defer func() { _ = sdk.Close() }()

	s, err := NewServer("test-mcp-server", "1.0.0", sdk)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	exercise := func(t *testing.T, c *mcpclient.Client) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := c.Initialize(ctx, mcp.InitializeRequest{
			Params: mcp.InitializeParams{
				ProtocolVersion: "2024-11-05",
				Capabilities:    mcp.ClientCapabilities{},
				ClientInfo:      mcp.Implementation{Name: "test-client", Version: "1.0.0"},
			},
		})
		if err != nil {
			t.Fatalf("initialize: %v", err)
		}

		tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			t.Fatalf("tools/list: %v", err)
		}
		names := make(map[string]bool)
		for _, tool := range tools.Tools {
			names[tool.Name] = true
		}
		for _, want := range []string{"rosette_document", "rosette_morphology", "rosette_name_translation", "rosette_name_similarity", "rosette_ping", "rosette_info"} {
			if !names[want] {
				t.Errorf("tool %q not registered", want)
			}
		}

		res, err := c.CallTool(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "rosette_ping"}})
		if err != nil {
			t.Fatalf("tools/call: %v", err)
		}
		if res.IsError {
			t.Fatalf("rosette_ping returned tool error: %+v", res.Content)
		}
	}

	t.Run("InProcessTransport", func(t *testing.T) {
		tr := transport.NewInProcessTransport(s)
		if err := tr.Start(context.Background()); err != nil {
			t.Fatalf("start: %v", err)
		}
		defer func() { _ = tr.Close() }()
		exercise(t, mcpclient.NewClient(tr))
	})

	t.Run("HTTPTransport", func(t *testing.T) {
		streamSrv := server.NewStreamableHTTPServer(s, server.WithEndpointPath("/mcp"))
		httpSrv := httptest.NewServer(streamSrv)
		defer httpSrv.Close()

		tr, err := transport.NewStreamableHTTP(httpSrv.URL + "/mcp")
		if err != nil {
			t.Fatalf("transport: %v", err)
		}
		if err := tr.Start(context.Background()); err != nil {
			t.Fatalf("start: %v", err)
		}
		defer func() { _ = tr.Close() }()
		exercise(t, mcpclient.NewClient(tr))
	})
}

func TestBuildRouter(t *testing.T) {
	var mcpHit atomic.Bool
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { mcpHit.Store(true) })
	svcHealth := health.NewServiceHealthChecker(zerolog.Nop())
	srv := httptest.NewServer(buildRouter("/mcp", mcpHandler, svcHealth))
	defer srv.Close()

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
	}

	resp, err := http.Post(srv.URL+"/mcp", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /mcp: %v", err)
	}
	_ = resp.Body.Close()
	if !mcpHit.Load() {
		t.Fatalf("mcp handler not mounted")
	}
}
