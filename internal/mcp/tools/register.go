package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolNameInfer        = "har2raml_infer"
	ToolNameSessionsList = "har2raml_sessions_list"
)

// Register registers all tools with the MCP server. The sessions tool is
// only registered when a powhttp client is available.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name: ToolNameInfer,
		Description: "Infer a RAML 0.8 API description from captured HTTP traffic. Source is one of paths (HAR files or directories), " +
			"har (inline HAR JSON) or session_id (powhttp session). Returns {document, base_uri, files: [{name, path, kind, content}], stats, warnings}. " +
			"files hold the example and schema documents the RAML references by path. Use select (jq) and base_uri to narrow the traffic, " +
			"merge_ids to fold /users/1, /users/2 into /users/{id}.",
	}, ToolInfer(d))

	if d.Client != nil {
		AddTool(srv, &sdkmcp.Tool{
			Name:        ToolNameSessionsList,
			Description: "List powhttp sessions with their entry counts. Pass a session_id to har2raml_infer to convert it.",
		}, ToolSessionsList(d))
	}
}
