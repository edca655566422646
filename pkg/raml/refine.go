package raml

import "log/slog"

type refineConfig struct {
	greedy bool
}

// RefineOption configures Refine.
type RefineOption func(*refineConfig)

// WithGreedyRefine absorbs every single-child link into the base URI, even
// when the absorbed resource owns methods. Those methods are dropped from the
// refined tree, and a tree built from a single call collapses entirely.
func WithGreedyRefine() RefineOption {
	return func(c *refineConfig) {
		c.greedy = true
	}
}

// Refine folds the chain of single-child resources below the root into the
// base URI. The chain stops at the first node with zero or several children,
// and, unless greedy, before a child that owns methods. The refined API
// adopts the children of the last absorbed node and takes the base URI as
// its own URI; the children's URIs are unchanged.
// The original API is returned when nothing was absorbed.
func Refine(api *API, opts ...RefineOption) *API {
	var cfg refineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseURI := ""
	var owner Owner = api
	for owner.children().Len() == 1 {
		only := owner.children().Oldest().Value
		if !cfg.greedy && only.methods.Len() > 0 {
			break
		}
		baseURI += only.Segment
		owner = only
	}
	if baseURI == "" {
		return api
	}

	refined := &API{
		tree:     newTree(baseURI),
		Title:    api.Title,
		BaseURI:  baseURI,
		Schemas:  api.Schemas,
		Examples: api.Examples,
		settings: api.settings,
	}
	for pair := owner.children().Oldest(); pair != nil; pair = pair.Next() {
		refined.kids.Set(pair.Key, pair.Value)
	}

	slog.Debug("refined api",
		slog.String("base_uri", baseURI),
		slog.Int("resources", refined.kids.Len()),
	)
	return refined
}
