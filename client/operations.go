package client

import (
	"context"

	"github.com/rosette-api/rosette-go/client/internal/types"
)

// --------------------------------------------------------------------
// Document operations
// --------------------------------------------------------------------

// Language identifies the language of the content.
func (c *Client) Language(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpLanguage, params)
}

// Morphology returns morphological analysis of the content. An empty output
// selects MorphologyComplete.
func (c *Client) Morphology(ctx context.Context, params *Parameters, output MorphologyOutput) (*Response, error) {
	if output == "" {
		output = MorphologyComplete
	}
	return c.Invoke(ctx, types.MorphologyOperation(output), params)
}

// Entities extracts named entities.
func (c *Client) Entities(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpEntities, params)
}

// Categories classifies the content into topic categories.
func (c *Client) Categories(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpCategories, params)
}

// Relationships extracts relationships between entities.
func (c *Client) Relationships(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpRelationships, params)
}

// Sentiment scores document and entity sentiment.
func (c *Client) Sentiment(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpSentiment, params)
}

// Tokens splits the content into tokens.
func (c *Client) Tokens(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpTokens, params)
}

// Sentences splits the content into sentences.
func (c *Client) Sentences(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpSentences, params)
}

// TextEmbedding returns the embedding vector of the content.
func (c *Client) TextEmbedding(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpTextEmbedding, params)
}

// SyntaxDependencies returns the dependency parse of the content.
func (c *Client) SyntaxDependencies(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpSyntaxDependencies, params)
}

// Transliteration transliterates the content. Only inline content is accepted.
func (c *Client) Transliteration(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpTransliteration, params)
}

// Topics extracts key phrases and concepts.
func (c *Client) Topics(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpTopics, params)
}

// --------------------------------------------------------------------
// Name operations
// --------------------------------------------------------------------

// NameTranslation translates a name; see NameTranslationRequest.Parameters.
func (c *Client) NameTranslation(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpNameTranslation, params)
}

// NameSimilarity scores how likely two names refer to the same entity.
func (c *Client) NameSimilarity(ctx context.Context, params *Parameters) (*Response, error) {
	return c.Invoke(ctx, OpNameSimilarity, params)
}

// --------------------------------------------------------------------
// Service operations
// --------------------------------------------------------------------

// Ping checks that the service is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.Invoke(ctx, OpPing, nil)
}

// Info returns the service name and build.
func (c *Client) Info(ctx context.Context) (*Response, error) {
	return c.Invoke(ctx, OpInfo, nil)
}

// HealthPing reports whether the service answers ping with this key.
func (c *Client) HealthPing(ctx context.Context) error {
	_, err := c.Ping(ctx)
	return err
}
