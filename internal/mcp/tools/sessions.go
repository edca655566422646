package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/har2raml/pkg/types"
)

// ToolSessionsList lists the powhttp sessions that har2raml_infer can convert.
func ToolSessionsList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.SessionsListInput) (*sdkmcp.CallToolResult, types.SessionsListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.SessionsListInput) (*sdkmcp.CallToolResult, types.SessionsListOutput, error) {
		if d.Client == nil {
			return nil, types.SessionsListOutput{}, ErrInvalidInput("powhttp is not configured")
		}
		sessions, err := d.Client.ListSessions(ctx)
		if err != nil {
			return nil, types.SessionsListOutput{}, ErrLoad(err)
		}

		output := types.SessionsListOutput{
			Sessions: make([]types.SessionInfo, len(sessions)),
		}
		for i, sess := range sessions {
			output.Sessions[i] = types.SessionInfo{
				SessionID:  sess.ID,
				Name:       sess.Name,
				EntryCount: len(sess.EntryIDs),
			}
		}
		return nil, output, nil
	}
}
