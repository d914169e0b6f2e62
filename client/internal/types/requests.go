package types

// ------------------------------
// Typed request builders
// ------------------------------

// NameTranslationRequest holds parameters for name-translation.
// Name and TargetLanguage are required; the rest are optional hints.
type NameTranslationRequest struct {
	Name                   string `json:"name"`
	EntityType             string `json:"entityType,omitempty"`
	SourceScript           string `json:"sourceScript,omitempty"`
	SourceLanguageOfOrigin string `json:"sourceLanguageOfOrigin,omitempty"`
	SourceLanguageOfUse    string `json:"sourceLanguageOfUse,omitempty"`
	TargetLanguage         string `json:"targetLanguage"`
	TargetScript           string `json:"targetScript,omitempty"`
	TargetScheme           string `json:"targetScheme,omitempty"`
}

// Parameters converts the request into a container, leaving out empty fields.
func (r NameTranslationRequest) Parameters() *Parameters {
	p := NewParameters()
	setIf(p, "name", r.Name)
	setIf(p, "entityType", r.EntityType)
	setIf(p, "sourceScript", r.SourceScript)
	setIf(p, "sourceLanguageOfOrigin", r.SourceLanguageOfOrigin)
	setIf(p, "sourceLanguageOfUse", r.SourceLanguageOfUse)
	setIf(p, "targetLanguage", r.TargetLanguage)
	setIf(p, "targetScript", r.TargetScript)
	setIf(p, "targetScheme", r.TargetScheme)
	return p
}

// Name is one side of a name-similarity comparison.
type Name struct {
	Text       string `json:"text"`
	Language   string `json:"language,omitempty"`
	Script     string `json:"script,omitempty"`
	EntityType string `json:"entityType,omitempty"`
}

// NameSimilarityRequest holds the two names to compare.
type NameSimilarityRequest struct {
	Name1 Name `json:"name1"`
	Name2 Name `json:"name2"`
}

// Parameters converts the request into a container. A name with empty text
// is left out so validation reports it.
func (r NameSimilarityRequest) Parameters() *Parameters {
	p := NewParameters()
	if r.Name1.Text != "" {
		p.Set("name1", r.Name1)
	}
	if r.Name2.Text != "" {
		p.Set("name2", r.Name2)
	}
	return p
}

func setIf(p *Parameters, key, value string) {
	if value != "" {
		p.Set(key, value)
	}
}
