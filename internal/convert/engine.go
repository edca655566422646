// Package convert runs the capture-to-RAML pipeline shared by the CLI and
// the MCP server: select entries, build the resource tree, refine, merge,
// render and optionally verify the generated schemas.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/usestring/har2raml/internal/cache"
	"github.com/usestring/har2raml/internal/capture"
	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/pkg/client"
	"github.com/usestring/har2raml/pkg/jsoncompact"
	"github.com/usestring/har2raml/pkg/jsonschema"
	"github.com/usestring/har2raml/pkg/raml"
)

// ErrNoCalls is returned when no entry survives selection and the base URI filter.
var ErrNoCalls = errors.New("no calls to convert")

// Options controls one conversion.
type Options struct {
	Title   string
	BaseURI string // substring a call URL must contain
	Indent  string
	Select  string // jq predicate over HAR entries; empty keeps all

	GreedyRefine     bool
	MergeIDs         bool
	MergeMinSiblings int
	VerifySchemas    bool

	// Compact trims example artifacts when enabled.
	Compact *jsoncompact.Options
}

// OptionsFromConfig returns the conversion options configured by cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:            cfg.Title,
		BaseURI:          cfg.BaseURI,
		Indent:           cfg.Indent,
		GreedyRefine:     cfg.GreedyRefine,
		MergeIDs:         cfg.MergeIDs,
		MergeMinSiblings: cfg.MergeMinSiblings,
		VerifySchemas:    cfg.VerifySchemas,
		Compact: &jsoncompact.Options{
			MaxArrayItems: cfg.ExampleMaxArrayItems,
			MaxStringLen:  cfg.ExampleMaxStringLen,
		},
	}
}

// Stats summarizes a conversion.
type Stats struct {
	Entries   int `json:"entries"`
	Calls     int `json:"calls"`
	Resources int `json:"resources"`
	Methods   int `json:"methods"`
	Merged    int `json:"merged"`
	Schemas   int `json:"schemas"`
	Examples  int `json:"examples"`
}

// Result is a rendered API and its external files.
type Result struct {
	API      *raml.API
	Document string
	Files    []*raml.ExternalFile // examples first, then schemas
	Stats    Stats
	Warnings []string
}

// Engine converts captures. It is safe for concurrent use; the schema
// cache is shared across conversions.
type Engine struct {
	schemas *cache.SchemaCache
}

// New creates an engine whose schema cache holds up to cacheSize documents.
func New(cacheSize int) (*Engine, error) {
	if cacheSize < 1 {
		cacheSize = config.DefaultSchemaCacheMaxItems
	}
	c, err := cache.NewSchemaCache(cacheSize, jsonschema.Document)
	if err != nil {
		return nil, fmt.Errorf("creating schema cache: %w", err)
	}
	return &Engine{schemas: c}, nil
}

// ConvertPaths loads HAR files and directories and converts their entries.
func (e *Engine) ConvertPaths(ctx context.Context, paths []string, workers int, opts Options) (*Result, error) {
	entries, err := capture.LoadPaths(ctx, paths, workers)
	if err != nil {
		return nil, fmt.Errorf("loading captures: %w", err)
	}
	return e.Convert(ctx, entries, opts)
}

// ConvertSession converts the entries of a powhttp session.
func (e *Engine) ConvertSession(ctx context.Context, lister capture.EntryLister, sessionID string, listOpts *client.ListEntriesOptions, opts Options) (*Result, error) {
	entries, err := capture.FromSession(ctx, lister, sessionID, listOpts)
	if err != nil {
		return nil, err
	}
	return e.Convert(ctx, entries, opts)
}

// Convert runs the pipeline over entries.
func (e *Engine) Convert(ctx context.Context, entries []capture.Entry, opts Options) (*Result, error) {
	start := time.Now()
	stats := Stats{Entries: len(entries)}

	if opts.Select != "" {
		selected, err := capture.Select(ctx, entries, opts.Select)
		if err != nil {
			return nil, err
		}
		entries = selected
	}
	calls := capture.Calls(entries)

	api := raml.Build(calls, opts.BaseURI, e.apiOptions(opts)...)
	api.Walk(func(r *raml.Resource) bool {
		for _, m := range r.Methods() {
			stats.Calls += len(m.Calls())
		}
		return true
	})
	if stats.Calls == 0 {
		return nil, ErrNoCalls
	}

	var refineOpts []raml.RefineOption
	if opts.GreedyRefine {
		refineOpts = append(refineOpts, raml.WithGreedyRefine())
	}
	api = raml.Refine(api, refineOpts...)
	if opts.Title != "" {
		api.SetTitle(opts.Title)
	}

	if opts.MergeIDs {
		stats.Merged = raml.MergeParameterized(api, raml.ParameterizedOptions{MinSiblings: opts.MergeMinSiblings})
	}

	indent := opts.Indent
	if indent == "" {
		indent = raml.DefaultIndent
	}
	doc := raml.NewSerializer(indent).Render(api, 0)

	api.Walk(func(r *raml.Resource) bool {
		stats.Resources++
		stats.Methods += len(r.Methods())
		return true
	})
	stats.Schemas = api.Schemas.Len()
	stats.Examples = api.Examples.Len()

	res := &Result{API: api, Document: doc, Files: api.Files(), Stats: stats}
	if opts.VerifySchemas {
		res.Warnings = Verify(api)
	}

	hits, misses := e.schemas.Stats()
	slog.Info("converted capture",
		slog.Int("entries", stats.Entries),
		slog.Int("calls", stats.Calls),
		slog.Int("resources", stats.Resources),
		slog.Int("methods", stats.Methods),
		slog.Int("merged", stats.Merged),
		slog.Int("schemas", stats.Schemas),
		slog.Int("examples", stats.Examples),
		slog.Int("warnings", len(res.Warnings)),
		slog.Int64("schema_cache_hits", hits),
		slog.Int64("schema_cache_misses", misses),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return res, nil
}

func (e *Engine) apiOptions(opts Options) []raml.Option {
	apiOpts := []raml.Option{raml.WithSchemaGenerator(e.schemas.Generate)}
	if opts.Compact.Enabled() {
		c := *opts.Compact
		apiOpts = append(apiOpts, raml.WithExampleCompactor(func(example string) (string, error) {
			return jsoncompact.Indented(example, &c)
		}))
	}
	return apiOpts
}
