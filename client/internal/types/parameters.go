package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Parameters is the mutable holder for request fields. It is not safe for
// concurrent mutation; a call snapshots it with Payload before returning, so
// changes made afterwards never reach a request already issued.
//
// The zero value is ready to use.
type Parameters struct {
	values map[string]any
}

// NewParameters returns an empty container.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]any)}
}

// Set stores or overwrites key. It returns p so calls can be chained.
func (p *Parameters) Set(key string, value any) *Parameters {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key and whether it was present.
func (p *Parameters) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key holds a usable value. Nil values and empty strings
// count as absent.
func (p *Parameters) Has(key string) bool {
	v, ok := p.Get(key)
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}

// Delete removes key.
func (p *Parameters) Delete(key string) {
	if p == nil {
		return
	}
	delete(p.values, key)
}

// Keys returns the stored keys in sorted order.
func (p *Parameters) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored entries.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// Payload serialises the container into an immutable JSON snapshot. A nil or
// empty container yields "{}".
func (p *Parameters) Payload() (json.RawMessage, error) {
	if p == nil || len(p.values) == 0 {
		return json.RawMessage("{}"), nil
	}
	b, err := json.Marshal(p.values)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	return json.RawMessage(b), nil
}

// Document fields shared by every text-analysis operation.
const (
	KeyContent    = "content"
	KeyContentURI = "contentUri"
	KeyLanguage   = "language"
	KeyGenre      = "genre"
	KeyOptions    = "options"
)

// SetContent sets the text to analyse.
func (p *Parameters) SetContent(content string) *Parameters { return p.Set(KeyContent, content) }

// SetContentURI sets a URL the service downloads the text from.
func (p *Parameters) SetContentURI(uri string) *Parameters { return p.Set(KeyContentURI, uri) }

// SetLanguage sets the ISO 639-3 language code of the content.
func (p *Parameters) SetLanguage(lang string) *Parameters { return p.Set(KeyLanguage, lang) }

// SetGenre sets the document genre hint (e.g. "social-media").
func (p *Parameters) SetGenre(genre string) *Parameters { return p.Set(KeyGenre, genre) }

// SetOptions sets the endpoint-specific options object.
func (p *Parameters) SetOptions(opts map[string]any) *Parameters { return p.Set(KeyOptions, opts) }
