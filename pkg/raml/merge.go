package raml

import (
	"log/slog"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Merge folds sibling resources into one composite resource registered under
// newParent at segment (a leading '/' is added when missing).
//
// When parent is non-nil the siblings are first removed from it, which allows
// merging in place (parent == newParent). Methods are unioned by verb into
// composite methods whose calls concatenate the siblings' calls in sibling
// order. Children are unioned by segment and merged recursively, so the
// composite subtree has the shape of the union of the siblings' subtrees.
func Merge(parent, newParent Owner, siblings []*Resource, segment string) *Resource {
	if !strings.HasPrefix(segment, "/") {
		segment = "/" + segment
	}
	uri := strings.TrimSuffix(newParent.URI(), "/") + segment

	if parent != nil {
		for _, s := range siblings {
			parent.children().Delete(s.Segment)
		}
	}

	composite := newResource(segment, uri)
	composite.Kind = Composite
	composite.Parts = append([]*Resource(nil), siblings...)
	newParent.children().Set(segment, composite)

	verbs := orderedmap.New[string, []*Method]()
	for _, s := range siblings {
		for _, m := range s.Methods() {
			group, _ := verbs.Get(m.Verb)
			verbs.Set(m.Verb, append(group, m))
		}
	}
	for pair := verbs.Oldest(); pair != nil; pair = pair.Next() {
		composite.methods.Set(pair.Key, newCompositeMethod(pair.Key, uri, pair.Value))
	}

	segments := orderedmap.New[string, []*Resource]()
	for _, s := range siblings {
		for _, child := range s.Resources() {
			group, _ := segments.Get(child.Segment)
			segments.Set(child.Segment, append(group, child))
		}
	}
	for pair := segments.Oldest(); pair != nil; pair = pair.Next() {
		Merge(nil, composite, pair.Value, pair.Key)
	}

	return composite
}

var (
	uuidSegment    = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	numericSegment = regexp.MustCompile(`^\d+$`)
	hexSegment     = regexp.MustCompile(`^[0-9a-f]{8,}$`)
)

// Placeholder returns the URI parameter a path segment generalizes to:
// "{uuid}" for UUIDs, "{id}" for numbers, "{hex}" for hex strings of eight or
// more characters. ok is false for any other segment.
func Placeholder(segment string) (placeholder string, ok bool) {
	s := strings.ToLower(strings.TrimPrefix(segment, "/"))
	switch {
	case uuidSegment.MatchString(s):
		return "{uuid}", true
	case numericSegment.MatchString(s):
		return "{id}", true
	case hexSegment.MatchString(s):
		return "{hex}", true
	}
	return "", false
}

// ParameterizedOptions configures MergeParameterized.
type ParameterizedOptions struct {
	// MinSiblings is the smallest group of look-alike siblings worth folding.
	// Values below 1 mean 2.
	MinSiblings int
}

// MergeParameterized folds siblings that look like identifiers (see
// Placeholder) into one composite per placeholder, in place, throughout the
// tree. A sibling already named after the placeholder joins its group.
// It returns the number of composites created.
func MergeParameterized(api *API, opts ParameterizedOptions) int {
	minSiblings := opts.MinSiblings
	if minSiblings < 1 {
		minSiblings = 2
	}
	return mergeParameterized(api, minSiblings)
}

func mergeParameterized(owner Owner, minSiblings int) int {
	groups := orderedmap.New[string, []*Resource]()
	for _, r := range owner.Resources() {
		ph, ok := Placeholder(r.Segment)
		if !ok {
			if strings.HasPrefix(r.Segment, "/{") {
				ph, ok = strings.TrimPrefix(r.Segment, "/"), true
			}
		}
		if ok {
			group, _ := groups.Get(ph)
			groups.Set(ph, append(group, r))
		}
	}

	merged := 0
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		group := pair.Value
		if len(group) < minSiblings || (len(group) == 1 && group[0].Segment == "/"+pair.Key) {
			continue
		}
		Merge(owner, owner, group, pair.Key)
		merged++
		slog.Debug("merged parameterized resources",
			slog.String("parent", owner.URI()),
			slog.String("segment", "/"+pair.Key),
			slog.Int("siblings", len(group)),
		)
	}

	for _, r := range owner.Resources() {
		merged += mergeParameterized(r, minSiblings)
	}
	return merged
}
