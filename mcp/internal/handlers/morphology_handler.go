package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rosette-api/rosette-go/client"
)

// MorphologyHandler exposes the rosette_morphology tool.
type MorphologyHandler struct {
	client *client.Client
}

func NewMorphologyHandler(c *client.Client) *MorphologyHandler {
	return &MorphologyHandler{client: c}
}

// RegisterTools registers the rosette_morphology tool.
func (mh *MorphologyHandler) RegisterTools(s *server.MCPServer) error {
	morphologyTool := mcp.NewTool("rosette_morphology",
		mcp.WithDescription("Morphological analysis: lemmas, parts of speech, compound components or Han readings."),
		mcp.WithString("content", mcp.Description("Text to analyse; give this or content_uri")),
		mcp.WithString("content_uri", mcp.Description("URI of the document to analyse")),
		mcp.WithString("output", mcp.Enum(
			string(client.MorphologyComplete),
			string(client.MorphologyLemmas),
			string(client.MorphologyPartsOfSpeech),
			string(client.MorphologyCompoundComponents),
			string(client.MorphologyHanReadings),
		), mcp.Description("Which analysis to return (default complete)")),
		mcp.WithString("language", mcp.Description("ISO 639-3 language code, if known")),
	)
	s.AddTool(morphologyTool, mh.handleMorphology)
	return nil
}

func (mh *MorphologyHandler) handleMorphology(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	output := client.MorphologyOutput(optionalString(req, "output"))
	if output == "" {
		output = client.MorphologyComplete
	}
	resp, err := mh.client.Morphology(ctx, documentParameters(req), output)
	return toolResult(client.Operation("morphology/"+string(output)), resp, err), nil
}
