package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rosette-api/rosette-go/client"
)

// ServiceHandler exposes rosette_ping and rosette_info.
type ServiceHandler struct {
	client *client.Client
}

func NewServiceHandler(c *client.Client) *ServiceHandler {
	return &ServiceHandler{client: c}
}

// RegisterTools registers the service health tools.
func (sh *ServiceHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("rosette_ping",
		mcp.WithDescription("Check that the Rosette API is reachable and the key is accepted."),
	), sh.handlePing)
	s.AddTool(mcp.NewTool("rosette_info",
		mcp.WithDescription("Return Rosette API build and version information."),
	), sh.handleInfo)
	return nil
}

func (sh *ServiceHandler) handlePing(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := sh.client.Ping(ctx)
	return toolResult(client.OpPing, resp, err), nil
}

func (sh *ServiceHandler) handleInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := sh.client.Info(ctx)
	return toolResult(client.OpInfo, resp, err), nil
}
