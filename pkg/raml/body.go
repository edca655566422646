package raml

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/har2raml/pkg/jsoncompact"
)

// Body is one observed payload for a media type.
type Body struct {
	MediaType string
	// Schema is the text handed to schema inference; empty for non-JSON payloads.
	Schema string
	// Example is the text stored as the example artifact.
	Example string

	// SchemaFile and ExampleFile are set on the body that triggered registration.
	SchemaFile  *ExternalFile
	ExampleFile *ExternalFile
}

// HasContent reports whether the body carries an example.
func (b *Body) HasContent() bool {
	return strings.TrimSpace(b.Example) != ""
}

// composeBody interprets a raw payload. Empty payloads and "{}" are declared
// without content; JSON is normalized and pretty-printed and becomes schema
// input; anything else is kept verbatim as an example with no schema.
func composeBody(raw *RawBody, compact ExampleCompactor) *Body {
	if raw == nil || raw.MediaType == "" {
		return nil
	}
	text := strings.TrimSpace(raw.Text)
	if text == "" || text == "{}" {
		return &Body{MediaType: raw.MediaType}
	}

	pretty, err := jsoncompact.Normalize(text)
	if err != nil {
		return &Body{MediaType: raw.MediaType, Example: raw.Text}
	}

	example := pretty
	if compact != nil {
		if compacted, err := compact(pretty); err == nil {
			example = compacted
		}
	}
	return &Body{MediaType: raw.MediaType, Schema: pretty, Example: example}
}

// BodySet groups bodies by media type in order of first appearance.
type BodySet struct {
	m *orderedmap.OrderedMap[string, []*Body]
}

func newBodySet() *BodySet {
	return &BodySet{m: orderedmap.New[string, []*Body]()}
}

// add appends b and reports whether b opened a new media type.
func (s *BodySet) add(b *Body) bool {
	bodies, exists := s.m.Get(b.MediaType)
	s.m.Set(b.MediaType, append(bodies, b))
	return !exists
}

// Len returns the number of distinct media types.
func (s *BodySet) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Len()
}

// MediaTypes returns the media types in order of first appearance.
func (s *BodySet) MediaTypes() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Key)
	}
	return result
}

// Get returns every body observed for a media type.
func (s *BodySet) Get(mediaType string) []*Body {
	if s == nil {
		return nil
	}
	bodies, _ := s.m.Get(mediaType)
	return bodies
}

// Response aggregates the bodies observed for one status code.
type Response struct {
	Code   string
	Bodies *BodySet
}
