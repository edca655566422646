package raml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBody(t *testing.T) {
	tests := []struct {
		name       string
		raw        *RawBody
		isNil      bool
		hasContent bool
		schema     string
		example    string
	}{
		{name: "nil", raw: nil, isNil: true},
		{name: "no media type", raw: &RawBody{Text: "x"}, isNil: true},
		{name: "empty text", raw: jsonBody("  "), hasContent: false},
		{name: "empty object", raw: jsonBody(" {} "), hasContent: false},
		{
			name:       "json",
			raw:        jsonBody(`{"a":[1,2]}`),
			hasContent: true,
			schema:     "{\n  \"a\": [\n    1,\n    2\n  ]\n}",
			example:    "{\n  \"a\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name:       "json normalized",
			raw:        jsonBody(`{"n":1.0,"s":"\u00e9"}`),
			hasContent: true,
			schema:     "{\n  \"n\": 1,\n  \"s\": \"é\"\n}",
			example:    "{\n  \"n\": 1,\n  \"s\": \"é\"\n}",
		},
		{
			name:       "not json",
			raw:        &RawBody{MediaType: "text/plain", Text: "hello there"},
			hasContent: true,
			example:    "hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := composeBody(tt.raw, nil)
			if tt.isNil {
				assert.Nil(t, b)
				return
			}
			require.NotNil(t, b)
			assert.Equal(t, tt.raw.MediaType, b.MediaType)
			assert.Equal(t, tt.hasContent, b.HasContent())
			assert.Equal(t, tt.schema, b.Schema)
			assert.Equal(t, tt.example, b.Example)
		})
	}
}

func TestComposeBody_Compactor(t *testing.T) {
	shorten := func(string) (string, error) { return "short", nil }
	b := composeBody(jsonBody(`{"a": 1}`), shorten)
	assert.Equal(t, "{\n  \"a\": 1\n}", b.Schema)
	assert.Equal(t, "short", b.Example)

	failing := func(string) (string, error) { return "", errors.New("boom") }
	b = composeBody(jsonBody(`{"a": 1}`), failing)
	assert.Equal(t, b.Schema, b.Example)
}

func TestMethod_Phases(t *testing.T) {
	api := NewAPI(DefaultTitle, "", WithSchemaGenerator(echoSchema))
	res := api.child("/items")
	require.NoError(t, res.AddCall(call("GET", "/items", "200", "x=1")))
	require.NoError(t, res.AddCall(call("GET", "/items", "200", "x=2")))

	m, ok := res.Method("GET")
	require.True(t, ok)
	assert.False(t, m.Finalized())
	assert.Empty(t, m.QueryParams())
	assert.Empty(t, m.Responses())
	assert.Len(t, m.Calls(), 2)

	api.Finalize()
	assert.True(t, m.Finalized())
	assert.Len(t, m.QueryParams(), 1)

	err := res.AddCall(call("GET", "/items", "200"))
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Len(t, m.Calls(), 2)
}

func TestMethod_Derivation(t *testing.T) {
	api := NewAPI(DefaultTitle, "", WithSchemaGenerator(echoSchema))
	res := api.child("/users")

	c1 := call("POST", "/users", "201", "tag=a", "tag=b")
	c1.RequestBody = jsonBody(`{"name": "a"}`)
	c1.ResponseBody = jsonBody(`{"id": 1}`)
	c2 := call("POST", "/users", "201", "page=2")
	c2.RequestBody = jsonBody(`{"name": "b"}`)
	c2.ResponseBody = jsonBody(`{"id": 2}`)
	c3 := call("POST", "/users", "400")
	c3.RequestBody = &RawBody{MediaType: "text/plain", Text: "oops"}
	c3.ResponseBody = jsonBody(`{}`)

	for _, c := range []*CallRecord{c1, c2, c3} {
		require.NoError(t, res.AddCall(c))
	}
	api.Finalize()

	m, _ := res.Method("POST")

	var names []string
	for _, p := range m.QueryParams() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"tag", "page"}, names)
	tag, ok := m.QueryParam("tag")
	require.True(t, ok)
	assert.True(t, tag.Multivalue())
	page, _ := m.QueryParam("page")
	typ, _ := page.Type()
	assert.Equal(t, TypeNumber, typ)

	assert.Equal(t, []string{"application/json", "text/plain"}, m.Body().MediaTypes())
	jsonBodies := m.Body().Get("application/json")
	require.Len(t, jsonBodies, 2)
	require.NotNil(t, jsonBodies[0].ExampleFile)
	require.NotNil(t, jsonBodies[0].SchemaFile)
	assert.Nil(t, jsonBodies[1].ExampleFile)
	plain := m.Body().Get("text/plain")[0]
	require.NotNil(t, plain.ExampleFile)
	assert.Nil(t, plain.SchemaFile)

	responses := m.Responses()
	require.Len(t, responses, 2)
	assert.Equal(t, "201", responses[0].Code)
	assert.Equal(t, "400", responses[1].Code)
	created, ok := m.Response("201")
	require.True(t, ok)
	assert.Len(t, created.Bodies.Get("application/json"), 2)
	assert.NotNil(t, created.Bodies.Get("application/json")[0].ExampleFile)
	assert.Nil(t, created.Bodies.Get("application/json")[1].ExampleFile)
	bad, _ := m.Response("400")
	assert.False(t, bad.Bodies.Get("application/json")[0].HasContent())

	// request json, request text, first 201 response
	assert.Equal(t, 3, api.Examples.Len())
	// request json, first 201 response
	assert.Equal(t, 2, api.Schemas.Len())
	for _, f := range api.Files() {
		assert.Equal(t, "/users", f.SourceURI)
	}
}

func TestMethod_SharedContentDeduplicates(t *testing.T) {
	api := NewAPI(DefaultTitle, "", WithSchemaGenerator(echoSchema))
	a := call("GET", "/a", "200")
	a.ResponseBody = jsonBody(`{"ok": true}`)
	b := call("GET", "/b", "200")
	b.ResponseBody = jsonBody(`{"ok":true}`)
	require.NoError(t, api.child("/a").AddCall(a))
	require.NoError(t, api.child("/b").AddCall(b))

	api.Finalize()

	assert.Equal(t, 1, api.Examples.Len())
	assert.Equal(t, 1, api.Schemas.Len())
	ma, _ := api.kids.Oldest().Value.Method("GET")
	mb, _ := api.kids.Newest().Value.Method("GET")
	ra, _ := ma.Response("200")
	rb, _ := mb.Response("200")
	assert.Same(t, ra.Bodies.Get("application/json")[0].ExampleFile, rb.Bodies.Get("application/json")[0].ExampleFile)
}

func TestMethod_EqualJSONDeduplicates(t *testing.T) {
	api := NewAPI(DefaultTitle, "", WithSchemaGenerator(echoSchema))
	a := call("GET", "/a", "200")
	a.ResponseBody = jsonBody(`{"n":1.0}`)
	b := call("GET", "/b", "200")
	b.ResponseBody = jsonBody(`{"n":1}`)
	require.NoError(t, api.child("/a").AddCall(a))
	require.NoError(t, api.child("/b").AddCall(b))

	api.Finalize()

	assert.Equal(t, 1, api.Examples.Len())
	assert.Equal(t, 1, api.Schemas.Len())
}

func TestMethod_SchemaGeneratorFailure(t *testing.T) {
	failing := func(string) (string, error) { return "", errors.New("no schema") }
	api := NewAPI(DefaultTitle, "", WithSchemaGenerator(failing))
	c := call("GET", "/a", "200")
	c.ResponseBody = jsonBody(`{"ok": true}`)
	require.NoError(t, api.child("/a").AddCall(c))

	api.Finalize()
	assert.Equal(t, 1, api.Examples.Len())
	assert.Equal(t, 0, api.Schemas.Len())
}

func TestMethod_CompositeRejectsAppend(t *testing.T) {
	part := newMethod(call("GET", "/a", "200"))
	composite := newCompositeMethod("GET", "/{x}", []*Method{part})
	assert.ErrorIs(t, composite.Append(call("GET", "/a", "200")), ErrCompositeAppend)
	assert.Equal(t, "composite", composite.Kind.String())
	assert.Equal(t, "simple", part.Kind.String())
}
