package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "document_api",
		Description: "Produce a RAML 0.8 description of an API from captured traffic. Explains how to choose a source, narrow the traffic and fold ID segments before calling har2raml_infer.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "source",
				Description: "HAR file or directory path, or a powhttp session ID",
				Required:    false,
			},
			{
				Name:        "host",
				Description: "Host or base URI substring to keep (e.g., 'api.example.com/v1')",
				Required:    false,
			},
			{
				Name:        "title",
				Description: "Title of the generated API",
				Required:    false,
			},
		},
	}, HandleDocumentAPI(cfg))
}
