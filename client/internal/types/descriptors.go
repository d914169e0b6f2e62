package types

import (
	"net/http"
	"sort"
)

// Operation names one remote function of the API.
type Operation string

const (
	OpLanguage                     Operation = "language"
	OpMorphologyComplete           Operation = "morphology/complete"
	OpMorphologyLemmas             Operation = "morphology/lemmas"
	OpMorphologyPartsOfSpeech      Operation = "morphology/parts-of-speech"
	OpMorphologyCompoundComponents Operation = "morphology/compound-components"
	OpMorphologyHanReadings        Operation = "morphology/han-readings"
	OpEntities                     Operation = "entities"
	OpCategories                   Operation = "categories"
	OpRelationships                Operation = "relationships"
	OpSentiment                    Operation = "sentiment"
	OpTokens                       Operation = "tokens"
	OpSentences                    Operation = "sentences"
	OpTextEmbedding                Operation = "text-embedding"
	OpSyntaxDependencies           Operation = "syntax/dependencies"
	OpTransliteration              Operation = "transliteration"
	OpTopics                       Operation = "topics"
	OpNameTranslation              Operation = "name-translation"
	OpNameSimilarity               Operation = "name-similarity"
	OpPing                         Operation = "ping"
	OpInfo                         Operation = "info"
)

// MorphologyOutput selects the morphology sub-endpoint.
type MorphologyOutput string

const (
	MorphologyComplete           MorphologyOutput = "complete"
	MorphologyLemmas             MorphologyOutput = "lemmas"
	MorphologyPartsOfSpeech      MorphologyOutput = "parts-of-speech"
	MorphologyCompoundComponents MorphologyOutput = "compound-components"
	MorphologyHanReadings        MorphologyOutput = "han-readings"
)

// MorphologyOperation returns the operation serving output.
func MorphologyOperation(output MorphologyOutput) Operation {
	return Operation("morphology/" + string(output))
}

// Descriptor is the fixed wire contract of one operation.
type Descriptor struct {
	Name   Operation
	Path   string
	Method string
	// Required lists requirement groups; each group needs at least one of its keys.
	Required [][]string
	// Exclusive lists key groups of which at most one key may be supplied.
	Exclusive [][]string
}

// HasBody reports whether requests for this operation carry a JSON body.
func (d Descriptor) HasBody() bool { return d.Method != http.MethodGet }

func (d Descriptor) clone() Descriptor {
	d.Required = cloneGroups(d.Required)
	d.Exclusive = cloneGroups(d.Exclusive)
	return d
}

func cloneGroups(in [][]string) [][]string {
	if in == nil {
		return nil
	}
	out := make([][]string, len(in))
	for i, g := range in {
		out[i] = append([]string(nil), g...)
	}
	return out
}

// registry is built once at init and never mutated afterwards.
var registry = buildRegistry()

func buildRegistry() map[Operation]Descriptor {
	document := func(op Operation) Descriptor {
		return Descriptor{
			Name:      op,
			Path:      string(op),
			Method:    http.MethodPost,
			Required:  [][]string{{KeyContent, KeyContentURI}},
			Exclusive: [][]string{{KeyContent, KeyContentURI}},
		}
	}

	r := make(map[Operation]Descriptor)
	for _, op := range []Operation{
		OpLanguage,
		OpMorphologyComplete,
		OpMorphologyLemmas,
		OpMorphologyPartsOfSpeech,
		OpMorphologyCompoundComponents,
		OpMorphologyHanReadings,
		OpEntities,
		OpCategories,
		OpRelationships,
		OpSentiment,
		OpTokens,
		OpSentences,
		OpTextEmbedding,
		OpSyntaxDependencies,
		OpTopics,
	} {
		r[op] = document(op)
	}

	// transliteration does not accept contentUri
	r[OpTransliteration] = Descriptor{
		Name:     OpTransliteration,
		Path:     string(OpTransliteration),
		Method:   http.MethodPost,
		Required: [][]string{{KeyContent}},
	}
	r[OpNameTranslation] = Descriptor{
		Name:     OpNameTranslation,
		Path:     string(OpNameTranslation),
		Method:   http.MethodPost,
		Required: [][]string{{"name"}, {"targetLanguage"}},
	}
	r[OpNameSimilarity] = Descriptor{
		Name:     OpNameSimilarity,
		Path:     string(OpNameSimilarity),
		Method:   http.MethodPost,
		Required: [][]string{{"name1"}, {"name2"}},
	}
	r[OpPing] = Descriptor{Name: OpPing, Path: string(OpPing), Method: http.MethodGet}
	r[OpInfo] = Descriptor{Name: OpInfo, Path: string(OpInfo), Method: http.MethodGet}
	return r
}

// Lookup returns a copy of the descriptor registered for op.
func Lookup(op Operation) (Descriptor, bool) {
	d, ok := registry[op]
	if !ok {
		return Descriptor{}, false
	}
	return d.clone(), true
}

// Operations lists every registered operation in sorted order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(registry))
	for op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
