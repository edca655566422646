package raml

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FileKind distinguishes the two artifact registries of an API.
type FileKind string

// Artifact kinds. The kind names the directory and the file suffix.
const (
	KindSchema  FileKind = "schema"
	KindExample FileKind = "example"
)

// FileRole tells whether an artifact came from a request or a response body.
type FileRole string

// Artifact roles.
const (
	RoleRequest  FileRole = "Request"
	RoleResponse FileRole = "Response"
)

// maxBaseNameLen caps the name derived from a resource segment.
const maxBaseNameLen = 40

// ExternalFile is a deduplicated schema or example artifact.
type ExternalFile struct {
	Name      string // unique within its registry
	SourceURI string // URI of the resource that first produced the content
	Path      string // relative path, e.g. "schemas/usersResponse-schema.json"
	Content   string
}

// IncludeString returns the RAML include directive referencing the file.
func (f *ExternalFile) IncludeString() string {
	return "!include " + f.Path
}

// FileRegistry deduplicates artifact content by trimmed equality.
// Files are never removed or mutated once registered.
type FileRegistry struct {
	kind  FileKind
	files *orderedmap.OrderedMap[string, *ExternalFile]
}

// NewFileRegistry creates an empty registry for the given kind.
func NewFileRegistry(kind FileKind) *FileRegistry {
	return &FileRegistry{
		kind:  kind,
		files: orderedmap.New[string, *ExternalFile](),
	}
}

// Kind returns the registry's artifact kind.
func (r *FileRegistry) Kind() FileKind {
	return r.kind
}

// Register returns the file holding content, creating it if no registered
// file has the same content after trimming surrounding whitespace.
// A new file's name is proposedName, suffixed with _1, _2, ... until unused.
func (r *FileRegistry) Register(content, proposedName string, role FileRole, sourceURI string) *ExternalFile {
	trimmed := strings.TrimSpace(content)
	for pair := r.files.Oldest(); pair != nil; pair = pair.Next() {
		if strings.TrimSpace(pair.Value.Content) == trimmed {
			return pair.Value
		}
	}

	name := proposedName
	for i := 1; ; i++ {
		if _, taken := r.files.Get(name); !taken {
			break
		}
		name = proposedName + "_" + strconv.Itoa(i)
	}

	file := &ExternalFile{
		Name:      name,
		SourceURI: sourceURI,
		Path:      string(r.kind) + "s/" + name + string(role) + "-" + string(r.kind) + ".json",
		Content:   content,
	}
	r.files.Set(name, file)
	return file
}

// Get returns the file registered under name.
func (r *FileRegistry) Get(name string) (*ExternalFile, bool) {
	return r.files.Get(name)
}

// Len returns the number of registered files.
func (r *FileRegistry) Len() int {
	return r.files.Len()
}

// Files returns the registered files in registration order.
func (r *FileRegistry) Files() []*ExternalFile {
	result := make([]*ExternalFile, 0, r.files.Len())
	for pair := r.files.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// fileBaseName derives an artifact name from a resource segment:
// non-alphanumeric ASCII characters are dropped and the result is capped.
func fileBaseName(segment string) string {
	var b strings.Builder
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	name := b.String()
	if len(name) > maxBaseNameLen {
		name = name[:maxBaseNameLen]
	}
	return name
}
