package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/har2raml/pkg/raml"
)

func TestLayout(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.raml")
	require.NoError(t, os.Mkdir(existing, 0o755))

	tests := []struct {
		name    string
		target  string
		docPath string
		root    string
	}{
		{"raml file", filepath.Join(dir, "docs", "shop.raml"), filepath.Join(dir, "docs", "shop.raml"), filepath.Join(dir, "docs")},
		{"new directory", filepath.Join(dir, "gen"), filepath.Join(dir, "gen", "api.raml"), filepath.Join(dir, "gen")},
		{"directory named like a document", existing, filepath.Join(existing, "api.raml"), existing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docPath, root := Layout(tt.target)
			assert.Equal(t, tt.docPath, docPath)
			assert.Equal(t, tt.root, root)
		})
	}
}

func TestWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")
	files := []*raml.ExternalFile{
		{Name: "users", Path: "examples/usersResponse-example.json", Content: `{"id": 1}`},
		{Name: "users", Path: "/schemas/usersResponse-schema.json", Content: `{"type": "object"}`},
	}

	docPath, err := Write(target, "#%RAML 0.8", files)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, "api.raml"), docPath)

	doc, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, "#%RAML 0.8", string(doc))

	example, err := os.ReadFile(filepath.Join(target, "examples", "usersResponse-example.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"id": 1}`, string(example))

	schema, err := os.ReadFile(filepath.Join(target, "schemas", "usersResponse-schema.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"type": "object"}`, string(schema))
}

func TestWrite_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Write(filepath.Join(blocker, "out"), "x", nil)
	assert.Error(t, err)
}
