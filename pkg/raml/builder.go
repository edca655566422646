package raml

import (
	"log/slog"
	"strings"
)

const schemeSeparator = "://"

// Build creates an API tree from calls whose URL contains baseURIFilter.
// Other calls are skipped.
//
// The scheme prefix ("https://") becomes the first segment under the root so
// hosts never collide; the rest of the URL is cut into raw segments, each
// starting at a '/' (the host segment excepted). Segments are compared as
// exact strings: "/users" and "/users/" end on different resources.
func Build(calls []*CallRecord, baseURIFilter string, opts ...Option) *API {
	api := NewAPI(DefaultTitle, "", opts...)

	var accepted, skipped int
	for _, call := range calls {
		if !strings.Contains(call.URL, baseURIFilter) {
			skipped++
			continue
		}
		if err := addToTree(api, call); err != nil {
			// Unreachable for a freshly built tree; methods are never finalized here.
			slog.Debug("call rejected", slog.String("url", call.URL), slog.String("error", err.Error()))
			skipped++
			continue
		}
		accepted++
	}

	slog.Debug("built resource tree",
		slog.Int("accepted", accepted),
		slog.Int("skipped", skipped),
		slog.Int("roots", api.kids.Len()),
	)
	return api
}

func addToTree(api *API, call *CallRecord) error {
	var owner interface{ child(string) *Resource } = &api.tree
	var res *Resource

	rest := call.URL
	if i := strings.Index(rest, schemeSeparator); i >= 0 {
		scheme := rest[:i+len(schemeSeparator)]
		res = api.child(scheme)
		owner = res
		rest = rest[len(scheme):]
	}

	for {
		if rest == "" && res != nil {
			return res.AddCall(call)
		}
		segment := nextSegment(rest)
		res = owner.child(segment)
		owner = res
		rest = rest[len(segment):]
	}
}

// nextSegment returns the leading segment of a relative URI: everything up to
// the next '/', where a leading '/' belongs to the segment. The whole string
// is returned when no boundary follows.
func nextSegment(rel string) string {
	i := strings.IndexByte(rel, '/')
	if i == 0 {
		i = strings.IndexByte(rel[1:], '/')
		if i >= 0 {
			i++
		}
	}
	if i < 0 {
		return rel
	}
	return rel[:i]
}
