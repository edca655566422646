package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDocumentAPI implements the RAML documentation workflow.
func HandleDocumentAPI(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var source, host, title string
		if req != nil && req.Params != nil {
			args := req.Params.Arguments
			source = args["source"]
			host = args["host"]
			title = args["title"]
		}
		if title == "" {
			title = cfg.DefaultTitle
		}

		var sb strings.Builder
		sb.WriteString("# Document an API as RAML 0.8\n\n")
		sb.WriteString("Turn captured HTTP traffic into a RAML 0.8 document with inferred query parameters, ")
		sb.WriteString("request and response bodies, JSON examples and JSON schemas.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Pick the source**\n")
		sb.WriteString("   - `paths`: HAR files or directories (directories contribute `*.har` and `*har.json` files)\n")
		sb.WriteString("   - `har`: an inline HAR document\n")
		if cfg.PowHTTPEnabled {
			sb.WriteString("   - `session_id`: a powhttp session; list them with `har2raml_sessions_list`, or pass `active`\n")
		}
		sb.WriteString("2. **Narrow the traffic**\n")
		sb.WriteString("   - `base_uri` keeps calls whose URL contains the substring\n")
		sb.WriteString("   - `select` is a jq predicate over HAR entries, e.g. `.response.status < 400`\n")
		sb.WriteString("3. **Convert** with `har2raml_infer` and `include_files: false` first to review `stats` and the document\n")
		sb.WriteString("4. **Fold IDs**: if resources like `/users/1`, `/users/2` appear, retry with `merge_ids: true`\n")
		sb.WriteString("5. **Fetch files**: rerun with `include_files: true` to get the example and schema documents; ")
		sb.WriteString("save each under its `path` next to the RAML document\n")
		sb.WriteString("6. **Verify** with `verify_schemas: true` and report any `warnings`\n\n")

		sb.WriteString("## Reading the Output\n\n")
		sb.WriteString("- `baseUri` is the longest common prefix of the kept calls; resources below it are relative\n")
		sb.WriteString("- query parameters seen only with numeric values get `type: number`; repeated keys get `multivalue: true`\n")
		sb.WriteString("- a body's `schema` names an entry of the top-level `schemas` index\n\n")

		sb.WriteString("## Current Request\n\n")
		if source != "" {
			fmt.Fprintf(&sb, "- Source: `%s`\n", source)
		}
		if host != "" {
			fmt.Fprintf(&sb, "- Base URI filter: `%s`\n", host)
		}
		fmt.Fprintf(&sb, "- Title: `%s`\n", title)

		return &sdkmcp.GetPromptResult{
			Description: "RAML documentation workflow",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
