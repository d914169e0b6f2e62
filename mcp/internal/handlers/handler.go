// Package handlers exposes Rosette operations as MCP tools.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rosette-api/rosette-go/client"
)

// toolResult renders a client outcome as a tool result. Failures become tool
// errors so the host model can read them; they are never protocol errors.
func toolResult(op client.Operation, resp *client.Response, err error) *mcp.CallToolResult {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err))
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return mcp.NewToolResultText("{}")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		return mcp.NewToolResultText(string(resp.Body))
	}
	return mcp.NewToolResultText(buf.String())
}

// optionalString returns the string argument name, or "" when absent.
func optionalString(req mcp.CallToolRequest, name string) string {
	if v, ok := req.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

// documentParameters builds the common document inputs from tool arguments.
func documentParameters(req mcp.CallToolRequest) *client.Parameters {
	p := client.NewParameters()
	if v := optionalString(req, "content"); v != "" {
		p.SetContent(v)
	}
	if v := optionalString(req, "content_uri"); v != "" {
		p.SetContentURI(v)
	}
	if v := optionalString(req, "language"); v != "" {
		p.SetLanguage(v)
	}
	return p
}
