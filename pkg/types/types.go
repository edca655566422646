// Package types provides the input and output types of the har2raml MCP tools.
// These types are designed for external consumption.
package types

// InferInput is the input for har2raml_infer. Exactly one source is required:
// paths, har or session_id.
type InferInput struct {
	Paths     []string `json:"paths,omitempty" jsonschema:"HAR files or directories on the server host. Directories contribute *.har and *har.json files."`
	HAR       string   `json:"har,omitempty" jsonschema:"Inline HAR document (JSON text)"`
	SessionID string   `json:"session_id,omitempty" jsonschema:"powhttp session ID to convert; use 'active' for the active session"`

	Title   string `json:"title,omitempty" jsonschema:"API title (default: RAML API)"`
	BaseURI string `json:"base_uri,omitempty" jsonschema:"Only calls whose URL contains this substring are kept"`
	Indent  string `json:"indent,omitempty" jsonschema:"Indent unit: a number of spaces, 'tab', or a literal string (default: two spaces)"`
	Select  string `json:"select,omitempty" jsonschema:"jq predicate over HAR entries, e.g. '.response.status < 400'"`

	MergeIDs      *bool `json:"merge_ids,omitempty" jsonschema:"Fold ID-like sibling resources (numbers, UUIDs, hex) into a parameterized resource"`
	MinSiblings   int   `json:"min_siblings,omitempty" jsonschema:"Minimum ID-like siblings before folding (default: 2)"`
	GreedyRefine  *bool `json:"greedy_refine,omitempty" jsonschema:"Absorb every single-child link into the base URI, including resources with methods"`
	VerifySchemas *bool `json:"verify_schemas,omitempty" jsonschema:"Validate every generated schema against its example and report warnings"`

	ExampleMaxItems  int `json:"example_max_items,omitempty" jsonschema:"Trim example arrays to this many items (0: keep all)"`
	ExampleMaxString int `json:"example_max_string,omitempty" jsonschema:"Truncate example strings to this many characters (0: keep all)"`

	IncludeFiles *bool `json:"include_files,omitempty" jsonschema:"Return the external example and schema files (default: true)"`
}

// InferOutput is the output for har2raml_infer.
type InferOutput struct {
	Document string       `json:"document"`
	BaseURI  string       `json:"base_uri"`
	Files    []FileOutput `json:"files,omitzero"`
	Stats    Stats        `json:"stats"`
	Warnings []string     `json:"warnings,omitzero"`
}

// FileOutput is an external file referenced by the document through !include
// or the schemas index.
type FileOutput struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Kind      string `json:"kind"` // "example" or "schema"
	SourceURI string `json:"source_uri,omitempty"`
	Content   string `json:"content"`
}

// Stats summarizes a conversion.
type Stats struct {
	Entries   int `json:"entries"`
	Calls     int `json:"calls"`
	Resources int `json:"resources"`
	Methods   int `json:"methods"`
	Merged    int `json:"merged"`
	Schemas   int `json:"schemas"`
	Examples  int `json:"examples"`
}

// SessionsListInput is the input for har2raml_sessions_list.
type SessionsListInput struct{}

// SessionsListOutput is the output for har2raml_sessions_list.
type SessionsListOutput struct {
	Sessions []SessionInfo `json:"sessions,omitzero"`
}

// SessionInfo is a summary of a powhttp session.
type SessionInfo struct {
	SessionID  string `json:"session_id"`
	Name       string `json:"name"`
	EntryCount int    `json:"entry_count"`
}
