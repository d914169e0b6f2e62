package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/rosette-api/rosette-go/client"
)

// documentOperations are the operations rosette_document can run.
var documentOperations = []client.Operation{
	client.OpLanguage,
	client.OpEntities,
	client.OpCategories,
	client.OpRelationships,
	client.OpSentiment,
	client.OpTokens,
	client.OpSentences,
	client.OpTopics,
	client.OpTextEmbedding,
	client.OpSyntaxDependencies,
	client.OpTransliteration,
}

// DocumentHandler exposes the rosette_document tool.
type DocumentHandler struct {
	client *client.Client
}

func NewDocumentHandler(c *client.Client) *DocumentHandler {
	return &DocumentHandler{client: c}
}

// RegisterTools registers the rosette_document tool.
func (dh *DocumentHandler) RegisterTools(s *server.MCPServer) error {
	names := make([]string, 0, len(documentOperations))
	for _, op := range documentOperations {
		names = append(names, string(op))
	}

	documentTool := mcp.NewTool("rosette_document",
		mcp.WithDescription("Run a Rosette document analysis (language, entities, sentiment, ...) on inline text or a URI. Returns the API's JSON response."),
		mcp.WithString("operation", mcp.Required(), mcp.Enum(names...), mcp.Description("Analysis to run")),
		mcp.WithString("content", mcp.Description("Text to analyse; give this or content_uri")),
		mcp.WithString("content_uri", mcp.Description("URI of the document to analyse")),
		mcp.WithString("language", mcp.Description("ISO 639-3 language code, if known")),
	)
	s.AddTool(documentTool, dh.handleDocument)
	return nil
}

func (dh *DocumentHandler) handleDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opName, err := req.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op := client.Operation(opName)
	if !isDocumentOperation(op) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported operation %q", opName)), nil
	}

	log.Debug().Str("operation", opName).Msg("rosette_document")
	resp, err := dh.client.Invoke(ctx, op, documentParameters(req))
	return toolResult(op, resp, err), nil
}

func isDocumentOperation(op client.Operation) bool {
	for _, known := range documentOperations {
		if op == known {
			return true
		}
	}
	return false
}
