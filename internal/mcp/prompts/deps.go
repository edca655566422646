// Package prompts contains MCP prompt implementations for har2raml.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	// PowHTTPEnabled adds the powhttp session workflow to the guide.
	PowHTTPEnabled bool
	DefaultTitle   string
}
