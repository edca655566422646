package raml

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Owner is a node that holds child resources: the API root or a resource.
type Owner interface {
	// URI is the node's URI. Children's URIs extend it with their segment.
	URI() string
	// Resources returns the direct children in insertion order.
	Resources() []*Resource
	// Resource returns the child registered under segment.
	Resource(segment string) (*Resource, bool)

	children() *orderedmap.OrderedMap[string, *Resource]
}

// tree is the child bookkeeping shared by the API root and resources.
type tree struct {
	uri  string
	kids *orderedmap.OrderedMap[string, *Resource]
}

func newTree(uri string) tree {
	return tree{uri: uri, kids: orderedmap.New[string, *Resource]()}
}

// URI returns the node's URI.
func (t *tree) URI() string {
	return t.uri
}

// Resources returns the direct children in insertion order.
func (t *tree) Resources() []*Resource {
	result := make([]*Resource, 0, t.kids.Len())
	for pair := t.kids.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// Resource returns the child registered under segment.
func (t *tree) Resource(segment string) (*Resource, bool) {
	return t.kids.Get(segment)
}

func (t *tree) children() *orderedmap.OrderedMap[string, *Resource] {
	return t.kids
}

// child returns the child for segment, creating it on first use.
func (t *tree) child(segment string) *Resource {
	if r, ok := t.kids.Get(segment); ok {
		return r
	}
	r := newResource(segment, t.uri+segment)
	t.kids.Set(segment, r)
	return r
}

// Resource is one URI component of the tree.
type Resource struct {
	tree
	Segment string
	Kind    Kind
	// Parts are the sibling resources a composite generalizes.
	Parts []*Resource

	methods *orderedmap.OrderedMap[string, *Method]
}

func newResource(segment, uri string) *Resource {
	return &Resource{
		tree:    newTree(uri),
		Segment: segment,
		Kind:    Simple,
		methods: orderedmap.New[string, *Method](),
	}
}

// AddCall routes a call to the method for its verb, creating it on first use.
func (r *Resource) AddCall(call *CallRecord) error {
	if m, ok := r.methods.Get(call.Method); ok {
		return m.Append(call)
	}
	r.methods.Set(call.Method, newMethod(call))
	return nil
}

// Methods returns the resource's methods in order of first observed verb.
func (r *Resource) Methods() []*Method {
	result := make([]*Method, 0, r.methods.Len())
	for pair := r.methods.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// Method returns the method registered for verb.
func (r *Resource) Method(verb string) (*Method, bool) {
	return r.methods.Get(verb)
}

// finalize derives every method of the subtree: methods first, then children.
func (r *Resource) finalize(a artifacts) {
	a.segment, a.uri = r.Segment, r.uri
	for pair := r.methods.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.finalize(&a)
	}
	for pair := r.kids.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.finalize(a)
	}
}
