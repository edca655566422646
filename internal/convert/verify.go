package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/usestring/har2raml/pkg/jsonschema"
	"github.com/usestring/har2raml/pkg/raml"
)

// Verify validates every registered schema file against the example it was
// inferred from and returns one warning per failure. It must run after the
// API was rendered or finalized.
func Verify(api *raml.API) []string {
	var warnings []string
	checked := make(map[*raml.ExternalFile]bool)

	check := func(uri, verb, where string, b *raml.Body) {
		if b.SchemaFile == nil || checked[b.SchemaFile] {
			return
		}
		checked[b.SchemaFile] = true
		if err := jsonschema.Check(b.SchemaFile.Content, b.Schema); err != nil {
			w := fmt.Sprintf("%s %s %s %s: schema %s: %v", strings.ToLower(verb), uri, where, b.MediaType, b.SchemaFile.Name, err)
			slog.Warn("schema verification failed",
				slog.String("uri", uri),
				slog.String("method", verb),
				slog.String("schema", b.SchemaFile.Name),
				slog.String("error", err.Error()),
			)
			warnings = append(warnings, w)
		}
	}

	api.Walk(func(r *raml.Resource) bool {
		for _, m := range r.Methods() {
			forEachBody(m.Body(), func(b *raml.Body) { check(r.URI(), m.Verb, "request", b) })
			for _, resp := range m.Responses() {
				forEachBody(resp.Bodies, func(b *raml.Body) { check(r.URI(), m.Verb, "response "+resp.Code, b) })
			}
		}
		return true
	})

	slog.Debug("verified schemas",
		slog.Int("checked", len(checked)),
		slog.Int("failed", len(warnings)),
	)
	return warnings
}

func forEachBody(set *raml.BodySet, fn func(b *raml.Body)) {
	for _, mt := range set.MediaTypes() {
		for _, b := range set.Get(mt) {
			fn(b)
		}
	}
}
