package raml

import (
	"errors"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags a resource or method as observed directly or produced by a merge.
type Kind int

const (
	// Simple nodes hold calls routed to them by Build.
	Simple Kind = iota
	// Composite nodes generalize a set of sibling nodes (their Parts).
	Composite
)

func (k Kind) String() string {
	if k == Composite {
		return "composite"
	}
	return "simple"
}

var (
	// ErrFinalized is returned when calls are appended after derivation.
	ErrFinalized = errors.New("raml: method already finalized")
	// ErrCompositeAppend is returned when appending to a composite method,
	// whose calls are owned by its parts.
	ErrCompositeAppend = errors.New("raml: cannot append calls to a composite method")
)

// SchemaGenerator turns a JSON example into a schema document.
type SchemaGenerator func(example string) (string, error)

// ExampleCompactor rewrites JSON example text before it is registered.
type ExampleCompactor func(example string) (string, error)

// Method aggregates every call sharing a resource and an HTTP verb.
//
// A method has two phases. While accumulating, calls are appended. Finalize
// derives query parameters, request bodies and responses exactly once; after
// that the method rejects further calls.
type Method struct {
	Verb  string
	URL   string
	Kind  Kind
	Parts []*Method

	calls     []*CallRecord
	finalized bool
	params    *orderedmap.OrderedMap[string, *Param]
	body      *BodySet
	responses *orderedmap.OrderedMap[string, *Response]
}

func newMethod(call *CallRecord) *Method {
	return &Method{
		Verb:  call.Method,
		URL:   call.URL,
		Kind:  Simple,
		calls: []*CallRecord{call},
	}
}

func newCompositeMethod(verb, url string, parts []*Method) *Method {
	return &Method{
		Verb:  verb,
		URL:   url,
		Kind:  Composite,
		Parts: parts,
	}
}

// Calls returns the method's calls. A composite concatenates its parts' calls in part order.
func (m *Method) Calls() []*CallRecord {
	if m.Kind != Composite {
		return m.calls
	}
	var result []*CallRecord
	for _, part := range m.Parts {
		result = append(result, part.Calls()...)
	}
	return result
}

// Append adds a call during the accumulation phase.
func (m *Method) Append(call *CallRecord) error {
	if m.finalized {
		return ErrFinalized
	}
	if m.Kind == Composite {
		return ErrCompositeAppend
	}
	m.calls = append(m.calls, call)
	return nil
}

// Finalized reports whether the derived fields have been computed.
func (m *Method) Finalized() bool {
	return m.finalized
}

// QueryParams returns the derived parameter descriptors in order of first
// appearance. It is empty until the method is finalized.
func (m *Method) QueryParams() []*Param {
	if m.params == nil {
		return nil
	}
	result := make([]*Param, 0, m.params.Len())
	for pair := m.params.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// QueryParam returns the descriptor for name.
func (m *Method) QueryParam(name string) (*Param, bool) {
	if m.params == nil {
		return nil, false
	}
	return m.params.Get(name)
}

// Body returns the request bodies grouped by media type.
func (m *Method) Body() *BodySet {
	return m.body
}

// Responses returns the responses in order of first observed status code.
func (m *Method) Responses() []*Response {
	if m.responses == nil {
		return nil
	}
	result := make([]*Response, 0, m.responses.Len())
	for pair := m.responses.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// Response returns the response aggregated under code.
func (m *Method) Response(code string) (*Response, bool) {
	if m.responses == nil {
		return nil, false
	}
	return m.responses.Get(code)
}

// artifacts carries what finalization needs from the owning API and resource.
type artifacts struct {
	schemas     *FileRegistry
	examples    *FileRegistry
	inferSchema SchemaGenerator
	compact     ExampleCompactor

	segment string
	uri     string
}

func (m *Method) finalize(a *artifacts) {
	if m.finalized {
		return
	}
	m.finalized = true
	calls := m.Calls()

	m.params = orderedmap.New[string, *Param]()
	for _, call := range calls {
		for _, uc := range call.Usecases() {
			p, ok := m.params.Get(uc.Name)
			if !ok {
				p = newParam(uc.Name)
				m.params.Set(uc.Name, p)
			}
			p.addUsecase(uc)
		}
	}

	m.body = newBodySet()
	for _, call := range calls {
		b := composeBody(call.RequestBody, a.compact)
		if b == nil {
			continue
		}
		if m.body.add(b) {
			a.register(b, RoleRequest)
		}
	}

	m.responses = orderedmap.New[string, *Response]()
	for _, call := range calls {
		b := composeBody(call.ResponseBody, a.compact)
		resp, ok := m.responses.Get(call.ResponseStatus)
		if !ok {
			resp = &Response{Code: call.ResponseStatus, Bodies: newBodySet()}
			m.responses.Set(call.ResponseStatus, resp)
			if b != nil {
				a.register(b, RoleResponse)
			}
		}
		if b != nil {
			resp.Bodies.add(b)
		}
	}
}

// register stores the body's example and inferred schema as external files.
func (a *artifacts) register(b *Body, role FileRole) {
	name := fileBaseName(a.segment)
	if b.Example != "" {
		b.ExampleFile = a.examples.Register(b.Example, name, role, a.uri)
	}
	if b.Schema == "" || a.inferSchema == nil {
		return
	}
	doc, err := a.inferSchema(b.Schema)
	if err != nil {
		slog.Debug("schema inference failed",
			slog.String("uri", a.uri),
			slog.String("media_type", b.MediaType),
			slog.String("error", err.Error()),
		)
		return
	}
	if doc != "" {
		b.SchemaFile = a.schemas.Register(doc, name, role, a.uri)
	}
}
