package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"string", `"hello"`, "string"},
		{"integer", `42`, "integer"},
		{"whole float", `42.0`, "integer"},
		{"float", `3.14`, "number"},
		{"boolean", `false`, "boolean"},
		{"null", `null`, "null"},
		{"array", `[]`, "array"},
		{"object", `{}`, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Infer([]byte(tt.json), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Type)
			assert.Equal(t, Draft04, s.Version)
		})
	}
}

func TestInfer_Object(t *testing.T) {
	s, err := Infer([]byte(`{"name": "a", "age": 3, "nick": null}`), nil)
	require.NoError(t, err)

	var keys []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"age", "name", "nick"}, keys)
	assert.Equal(t, []string{"age", "name"}, s.Required)
	assert.Nil(t, s.AdditionalProperties)
}

func TestInfer_NotRequired(t *testing.T) {
	closed := false
	s, err := Infer([]byte(`{"a": 1}`), &InferOptions{AdditionalProperties: &closed})
	require.NoError(t, err)
	assert.Empty(t, s.Required)
	require.NotNil(t, s.AdditionalProperties)
}

func TestInfer_ArrayMerging(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		itemType  string
		anyOfLen  int
		reqFields []string
	}{
		{name: "same type", json: `["a", "b"]`, itemType: "string"},
		{name: "integer folds into number", json: `[1, 2.5, 3]`, itemType: "number"},
		{name: "mixed types", json: `[1, "a", true]`, anyOfLen: 3},
		{name: "objects keep shared required", json: `[{"id": 1, "x": 1}, {"id": 2}]`, itemType: "object", reqFields: []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Infer([]byte(tt.json), nil)
			require.NoError(t, err)
			require.NotNil(t, s.Items)
			if tt.anyOfLen > 0 {
				assert.Len(t, s.Items.AnyOf, tt.anyOfLen)
				return
			}
			assert.Equal(t, tt.itemType, s.Items.Type)
			if tt.reqFields != nil {
				assert.Equal(t, tt.reqFields, s.Items.Required)
				assert.Equal(t, 2, s.Items.Properties.Len())
			}
		})
	}
}

func TestInfer_InvalidJSON(t *testing.T) {
	_, err := Infer([]byte(`{"a":`), nil)
	assert.Error(t, err)
}

func TestDocument(t *testing.T) {
	doc, err := Document(`{"id": 7, "tags": ["x"]}`)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, Draft04, parsed["$schema"])
	assert.Equal(t, "object", parsed["type"])
	assert.Contains(t, doc, "\n  \"")

	props := parsed["properties"].(map[string]any)
	assert.Equal(t, "integer", props["id"].(map[string]any)["type"])
	assert.Equal(t, "array", props["tags"].(map[string]any)["type"])
}
