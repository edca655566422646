package raml

import (
	"github.com/usestring/har2raml/pkg/jsonschema"
)

// DefaultTitle is the title given to built APIs.
const DefaultTitle = "RAML API"

// API is the root of the resource tree. It owns the schema and example
// registries shared by every method in the tree.
type API struct {
	tree
	Title   string
	BaseURI string

	Schemas  *FileRegistry
	Examples *FileRegistry

	settings settings
}

// settings are the collaborators used when finalizing methods.
type settings struct {
	inferSchema SchemaGenerator
	compact     ExampleCompactor
}

// Option configures how an API derives its artifacts.
type Option func(*settings)

// WithSchemaGenerator replaces the schema inference function.
// A nil generator disables schema artifacts.
func WithSchemaGenerator(gen SchemaGenerator) Option {
	return func(s *settings) {
		s.inferSchema = gen
	}
}

// WithExampleCompactor rewrites JSON examples before registration.
func WithExampleCompactor(c ExampleCompactor) Option {
	return func(s *settings) {
		s.compact = c
	}
}

func defaultSettings() settings {
	return settings{inferSchema: jsonschema.Document}
}

// NewAPI creates an empty API.
func NewAPI(title, baseURI string, opts ...Option) *API {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &API{
		tree:     newTree(""),
		Title:    title,
		BaseURI:  baseURI,
		Schemas:  NewFileRegistry(KindSchema),
		Examples: NewFileRegistry(KindExample),
		settings: s,
	}
}

// SetTitle changes the rendered title.
func (a *API) SetTitle(title string) {
	a.Title = title
}

// Finalize derives every method in the tree, registering artifacts in
// traversal order. Methods already finalized are left untouched.
func (a *API) Finalize() {
	art := artifacts{
		schemas:     a.Schemas,
		examples:    a.Examples,
		inferSchema: a.settings.inferSchema,
		compact:     a.settings.compact,
	}
	for pair := a.kids.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.finalize(art)
	}
}

// Files returns every external file: examples first, then schemas.
func (a *API) Files() []*ExternalFile {
	return append(a.Examples.Files(), a.Schemas.Files()...)
}

// Walk visits every resource depth-first, parents before children.
func (a *API) Walk(fn func(r *Resource) bool) {
	var walk func(o Owner) bool
	walk = func(o Owner) bool {
		for _, r := range o.Resources() {
			if !fn(r) || !walk(r) {
				return false
			}
		}
		return true
	}
	walk(a)
}
