package client

import "github.com/rosette-api/rosette-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	Parameters       = types.Parameters
	Operation        = types.Operation
	MorphologyOutput = types.MorphologyOutput

	// Typed request builders
	NameTranslationRequest = types.NameTranslationRequest
	NameSimilarityRequest  = types.NameSimilarityRequest
	Name                   = types.Name

	// Outcomes
	Response = types.Response
	Result   = types.Result
)

// Operations.
const (
	OpLanguage                     = types.OpLanguage
	OpMorphologyComplete           = types.OpMorphologyComplete
	OpMorphologyLemmas             = types.OpMorphologyLemmas
	OpMorphologyPartsOfSpeech      = types.OpMorphologyPartsOfSpeech
	OpMorphologyCompoundComponents = types.OpMorphologyCompoundComponents
	OpMorphologyHanReadings        = types.OpMorphologyHanReadings
	OpEntities                     = types.OpEntities
	OpCategories                   = types.OpCategories
	OpRelationships                = types.OpRelationships
	OpSentiment                    = types.OpSentiment
	OpTokens                       = types.OpTokens
	OpSentences                    = types.OpSentences
	OpTextEmbedding                = types.OpTextEmbedding
	OpSyntaxDependencies           = types.OpSyntaxDependencies
	OpTransliteration              = types.OpTransliteration
	OpTopics                       = types.OpTopics
	OpNameTranslation              = types.OpNameTranslation
	OpNameSimilarity               = types.OpNameSimilarity
	OpPing                         = types.OpPing
	OpInfo                         = types.OpInfo
)

// Morphology outputs.
const (
	MorphologyComplete           = types.MorphologyComplete
	MorphologyLemmas             = types.MorphologyLemmas
	MorphologyPartsOfSpeech      = types.MorphologyPartsOfSpeech
	MorphologyCompoundComponents = types.MorphologyCompoundComponents
	MorphologyHanReadings        = types.MorphologyHanReadings
)

// NewParameters returns an empty parameter container.
func NewParameters() *Parameters { return types.NewParameters() }

// Operations lists every supported operation.
func Operations() []Operation { return types.Operations() }
