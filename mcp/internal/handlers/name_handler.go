package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rosette-api/rosette-go/client"
)

// NameHandler exposes the name translation and similarity tools.
type NameHandler struct {
	client *client.Client
}

func NewNameHandler(c *client.Client) *NameHandler {
	return &NameHandler{client: c}
}

// RegisterTools registers rosette_name_translation and rosette_name_similarity.
func (nh *NameHandler) RegisterTools(s *server.MCPServer) error {
	translationTool := mcp.NewTool("rosette_name_translation",
		mcp.WithDescription("Translate a person, location or organization name into another language and script."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to translate")),
		mcp.WithString("target_language", mcp.Required(), mcp.Description("ISO 639-3 target language, e.g. eng")),
		mcp.WithString("entity_type", mcp.Enum("PERSON", "LOCATION", "ORGANIZATION"), mcp.Description("Kind of name")),
		mcp.WithString("source_script", mcp.Description("ISO 15924 script of the name")),
		mcp.WithString("source_language_of_origin", mcp.Description("Language the name originates from")),
		mcp.WithString("source_language_of_use", mcp.Description("Language the name is used in")),
		mcp.WithString("target_script", mcp.Description("ISO 15924 target script")),
		mcp.WithString("target_scheme", mcp.Description("Transliteration scheme")),
	)
	s.AddTool(translationTool, nh.handleNameTranslation)

	similarityTool := mcp.NewTool("rosette_name_similarity",
		mcp.WithDescription("Score (0 to 1) how likely two names refer to the same entity."),
		mcp.WithString("name1", mcp.Required(), mcp.Description("First name")),
		mcp.WithString("name2", mcp.Required(), mcp.Description("Second name")),
		mcp.WithString("language1", mcp.Description("ISO 639-3 language of the first name")),
		mcp.WithString("language2", mcp.Description("ISO 639-3 language of the second name")),
		mcp.WithString("entity_type", mcp.Enum("PERSON", "LOCATION", "ORGANIZATION"), mcp.Description("Kind of names")),
	)
	s.AddTool(similarityTool, nh.handleNameSimilarity)
	return nil
}

func (nh *NameHandler) handleNameTranslation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target_language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := client.NameTranslationRequest{
		Name:                   name,
		TargetLanguage:         target,
		EntityType:             optionalString(req, "entity_type"),
		SourceScript:           optionalString(req, "source_script"),
		SourceLanguageOfOrigin: optionalString(req, "source_language_of_origin"),
		SourceLanguageOfUse:    optionalString(req, "source_language_of_use"),
		TargetScript:           optionalString(req, "target_script"),
		TargetScheme:           optionalString(req, "target_scheme"),
	}
	resp, err := nh.client.NameTranslation(ctx, r.Parameters())
	return toolResult(client.OpNameTranslation, resp, err), nil
}

func (nh *NameHandler) handleNameSimilarity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name1, _ := req.RequireString("name1")
	name2, _ := req.RequireString("name2")
	entityType := optionalString(req, "entity_type")

	r := client.NameSimilarityRequest{
		Name1: client.Name{Text: name1, Language: optionalString(req, "language1"), EntityType: entityType},
		Name2: client.Name{Text: name2, Language: optionalString(req, "language2"), EntityType: entityType},
	}
	// Missing names are reported by the client's validation.
	resp, err := nh.client.NameSimilarity(ctx, r.Parameters())
	return toolResult(client.OpNameSimilarity, resp, err), nil
}
