// Package output persists a rendered API document and its external files.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/usestring/har2raml/pkg/raml"
)

// DefaultDocumentName is used when the target is a directory.
const DefaultDocumentName = "api.raml"

// Layout resolves where the document goes and which directory include
// paths are relative to. A target that is an existing directory or does not
// end in ".raml" is a directory holding api.raml.
func Layout(target string) (docPath, root string) {
	if info, err := os.Stat(target); (err == nil && info.IsDir()) || !strings.HasSuffix(target, ".raml") {
		return filepath.Join(target, DefaultDocumentName), target
	}
	return target, filepath.Dir(target)
}

// Write stores the document, then the files under the root of target, in
// order, creating directories as needed. It returns the document path.
func Write(target, document string, files []*raml.ExternalFile) (string, error) {
	docPath, root := Layout(target)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(docPath, []byte(document), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	for _, f := range files {
		rel := strings.TrimPrefix(f.Path, "/")
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(abs, []byte(f.Content), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	slog.Info("wrote RAML document",
		slog.String("path", docPath),
		slog.Int("files", len(files)),
	)
	return docPath, nil
}
