package raml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_QueryParameters(t *testing.T) {
	calls := []*CallRecord{
		call("GET", "https://api.example.com/v1/items", "200", "x=1"),
		call("GET", "https://api.example.com/v1/items", "200", "x=2"),
		call("GET", "https://api.example.com/v1/items", "200", "x=hello"),
	}
	api := Refine(Build(calls, ""))

	expected := strings.Join([]string{
		"#%RAML 0.8",
		"title: RAML API",
		"version: v1",
		"baseUri: https://api.example.com/v1",
		"/items:",
		"  get:",
		"    queryParameters:",
		"      x:",
		"        example: 1",
		"    responses:",
		"      200:",
	}, "\n")
	assert.Equal(t, expected, NewSerializer(DefaultIndent).Render(api, 0))

	items, _ := api.Resource("/items")
	get, _ := items.Method("GET")
	x, _ := get.QueryParam("x")
	typ, _ := x.Type()
	assert.Equal(t, TypeString, typ)
	assert.False(t, x.Multivalue())
}

func TestRender_ParamAttributes(t *testing.T) {
	calls := []*CallRecord{
		call("GET", "https://h.test/search", "200", "page=1", "tag=a", "tag=b", "exact=true"),
		call("GET", "https://h.test/search", "200", "page=2"),
	}
	api := Refine(Build(calls, ""))
	api.SetTitle("Search")

	expected := strings.Join([]string{
		"#%RAML 0.8",
		"title: Search",
		"version: v1",
		"baseUri: https://h.test",
		"/search:",
		"\tget:",
		"\t\tqueryParameters:",
		"\t\t\tpage:",
		"\t\t\t\ttype: number",
		"\t\t\t\texample: 1",
		"\t\t\ttag:",
		"\t\t\t\tmultivalue: true",
		"\t\t\t\texample: a",
		"\t\t\texact:",
		"\t\t\t\ttype: boolean",
		"\t\t\t\texample: true",
		"\t\tresponses:",
		"\t\t\t200:",
	}, "\n")
	assert.Equal(t, expected, NewSerializer("\t").Render(api, 0))
}

func TestRender_Bodies(t *testing.T) {
	list := call("GET", "https://api.example.com/v1/users", "200")
	list.ResponseBody = jsonBody(`[{"id":1}]`)
	create := call("POST", "https://api.example.com/v1/users", "201")
	create.RequestBody = jsonBody(`{"name":"a"}`)
	create.ResponseBody = jsonBody(`{"id":1}`)
	again := call("POST", "https://api.example.com/v1/users", "201")
	again.RequestBody = jsonBody(`{"name":"b"}`)
	again.ResponseBody = jsonBody(`{"id":2}`)
	empty := call("DELETE", "https://api.example.com/v1/users", "204")
	empty.ResponseBody = &RawBody{MediaType: "application/json"}

	api := Refine(Build([]*CallRecord{list, create, again, empty}, "", WithSchemaGenerator(echoSchema)))

	expected := strings.Join([]string{
		"#%RAML 0.8",
		"title: RAML API",
		"version: v1",
		"baseUri: https://api.example.com/v1",
		"schemas:",
		"  - users: !include schemas/usersResponse-schema.json",
		"  - users_1: !include schemas/users_1Request-schema.json",
		"  - users_2: !include schemas/users_2Response-schema.json",
		"/users:",
		"  get:",
		"    responses:",
		"      200:",
		"        body:",
		"          application/json:",
		"            schema: users",
		"            example: !include examples/usersResponse-example.json",
		"  post:",
		"    body:",
		"      application/json:",
		"        schema: users_1",
		"        example: !include examples/users_1Request-example.json",
		"    responses:",
		"      201:",
		"        body:",
		"          application/json:",
		"            schema: users_2",
		"            example: !include examples/users_2Response-example.json",
		"  delete:",
		"    responses:",
		"      204:",
		"        body:",
		"          application/json:",
	}, "\n")
	assert.Equal(t, expected, NewSerializer(DefaultIndent).Render(api, 0))

	files := api.Files()
	assert.Len(t, files, 6)
	assert.Equal(t, "examples/usersResponse-example.json", files[0].Path)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]", files[0].Content)
	assert.Equal(t, "schemas/usersResponse-schema.json", files[3].Path)
	assert.Equal(t, "schema:"+files[0].Content, files[3].Content)
}

func TestRender_Idempotent(t *testing.T) {
	c := call("GET", "https://h.test/a", "200")
	c.ResponseBody = jsonBody(`{"ok":true}`)
	api := Refine(Build([]*CallRecord{c, call("GET", "https://h.test/b", "200")}, "", WithSchemaGenerator(echoSchema)))

	s := NewSerializer(DefaultIndent)
	first := s.Render(api, 0)
	assert.Equal(t, first, s.Render(api, 0))
	assert.Equal(t, 1, api.Schemas.Len())
	assert.False(t, strings.HasSuffix(first, "\n"))
}

func TestRenderResource_Nested(t *testing.T) {
	api := Refine(Build([]*CallRecord{
		call("PUT", "https://h.test/a/b", "200"),
		call("GET", "https://h.test/c", "200"),
	}, ""))
	api.Finalize()

	a, _ := api.Resource("/a")
	expected := strings.Join([]string{
		"  /a:",
		"    /b:",
		"      put:",
		"        responses:",
		"          200:",
	}, "\n")
	assert.Equal(t, expected, NewSerializer(DefaultIndent).RenderResource(a, 1))
}

func TestRender_EmptyAPI(t *testing.T) {
	out := NewSerializer(DefaultIndent).Render(NewAPI(DefaultTitle, ""), 0)
	assert.Equal(t, "#%RAML 0.8\ntitle: RAML API\nversion: v1\nbaseUri: ", out)
}
