package raml

import (
	"strings"
)

// Header literals of the rendered document.
const (
	FormatMarker = "#%RAML 0.8"
	Version      = "v1"
)

// DefaultIndent is the indentation unit used by the CLI.
const DefaultIndent = "  "

// Serializer renders an API as RAML 0.8 text. Output follows the insertion
// order of every map, so it is deterministic for a given call order.
type Serializer struct {
	Indent string
}

// NewSerializer creates a Serializer using indent as the indentation unit.
func NewSerializer(indent string) *Serializer {
	return &Serializer{Indent: indent}
}

func (s *Serializer) indent(depth int) string {
	return strings.Repeat(s.Indent, depth)
}

// Render finalizes the API, so that every artifact is registered, and renders
// the whole document at the given depth.
func (s *Serializer) Render(api *API, depth int) string {
	api.Finalize()

	ind := s.indent(depth)
	lines := []string{
		ind + FormatMarker,
		ind + "title: " + api.Title,
		ind + "version: " + Version,
		ind + "baseUri: " + api.BaseURI,
	}

	if api.Schemas.Len() > 0 {
		lines = append(lines, ind+"schemas:")
		ind1 := s.indent(depth + 1)
		for _, f := range api.Schemas.Files() {
			lines = append(lines, ind1+"- "+f.Name+": "+f.IncludeString())
		}
	}

	if resources := s.renderResources(api, depth); resources != "" {
		lines = append(lines, resources)
	}
	return strings.Join(lines, "\n")
}

func (s *Serializer) renderResources(o Owner, depth int) string {
	var blocks []string
	for _, r := range o.Resources() {
		blocks = append(blocks, s.RenderResource(r, depth))
	}
	return strings.Join(blocks, "\n")
}

// RenderResource renders a resource, its methods and its subtree.
// Methods that are not finalized render without derived blocks.
func (s *Serializer) RenderResource(r *Resource, depth int) string {
	lines := []string{s.indent(depth) + r.Segment + ":"}
	for _, m := range r.Methods() {
		lines = append(lines, s.RenderMethod(m, depth+1))
	}
	if children := s.renderResources(r, depth+1); children != "" {
		lines = append(lines, children)
	}
	return strings.Join(lines, "\n")
}

// RenderMethod renders a method's query parameters, body and responses.
func (s *Serializer) RenderMethod(m *Method, depth int) string {
	lines := []string{s.indent(depth) + strings.ToLower(m.Verb) + ":"}
	ind1 := s.indent(depth + 1)

	if params := m.QueryParams(); len(params) > 0 {
		lines = append(lines, ind1+"queryParameters:")
		for _, p := range params {
			lines = append(lines, s.renderParam(p, depth+2))
		}
	}

	if body := s.renderBodySet(m.Body(), depth+1); body != "" {
		lines = append(lines, body)
	}

	if responses := m.Responses(); len(responses) > 0 {
		lines = append(lines, ind1+"responses:")
		for _, r := range responses {
			lines = append(lines, s.renderResponse(r, depth+2))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Serializer) renderParam(p *Param, depth int) string {
	lines := []string{s.indent(depth) + p.Name + ":"}
	ind1 := s.indent(depth + 1)
	if p.Multivalue() {
		lines = append(lines, ind1+"multivalue: true")
	}
	if t, ok := p.Type(); ok && t != TypeString {
		lines = append(lines, ind1+"type: "+string(t))
	}
	if ex, ok := p.Example(); ok && ex != "" {
		lines = append(lines, ind1+"example: "+ex)
	}
	return strings.Join(lines, "\n")
}

// renderBodySet renders the first body of each media type.
func (s *Serializer) renderBodySet(set *BodySet, depth int) string {
	if set.Len() == 0 {
		return ""
	}
	lines := []string{s.indent(depth) + "body:"}
	for _, mt := range set.MediaTypes() {
		if bodies := set.Get(mt); len(bodies) > 0 {
			lines = append(lines, s.renderBody(bodies[0], depth+1))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Serializer) renderBody(b *Body, depth int) string {
	lines := []string{s.indent(depth) + b.MediaType + ":"}
	ind1 := s.indent(depth + 1)
	if b.SchemaFile != nil {
		lines = append(lines, ind1+"schema: "+b.SchemaFile.Name)
	}
	if b.ExampleFile != nil && b.HasContent() {
		lines = append(lines, ind1+"example: "+b.ExampleFile.IncludeString())
	}
	return strings.Join(lines, "\n")
}

func (s *Serializer) renderResponse(r *Response, depth int) string {
	lines := []string{s.indent(depth) + r.Code + ":"}
	if body := s.renderBodySet(r.Bodies, depth+1); body != "" {
		lines = append(lines, body)
	}
	return strings.Join(lines, "\n")
}
