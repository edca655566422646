package mcpsrv

import (
	"context"
	"testing"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/pkg/client"
)

type countInput struct {
	Paths []string `json:"paths"`
}

type countOutput struct {
	Calls int `json:"calls"`
}

func TestNewServer_Defaults(t *testing.T) {
	cfg := config.Load()
	cfg.PowHTTPBaseURL = "http://127.0.0.1:1"

	s, err := NewServer(WithConfig(cfg))
	require.NoError(t, err)
	assert.NotNil(t, s.MCPServer())
	assert.Same(t, cfg, s.Deps().Config)
	assert.NotNil(t, s.Deps().Engine)
	require.NotNil(t, s.Deps().Client)
	assert.Equal(t, "http://127.0.0.1:1", s.Deps().Client.BaseURL())
}

func TestNewServer_Options(t *testing.T) {
	c := client.New(client.WithBaseURL("http://powhttp.test"))
	s, err := NewServer(WithConfig(config.Load()), WithClient(c))
	require.NoError(t, err)
	assert.Same(t, c, s.Deps().Client)

	s, err = NewServer(WithConfig(config.Load()), WithClient(c), WithoutPowHTTP(), WithoutBuiltinPrompts())
	require.NoError(t, err)
	assert.Nil(t, s.Deps().Client)
}

func TestNewServer_CustomTools(t *testing.T) {
	var built *Deps
	s, err := NewServer(
		WithConfig(config.Load()),
		WithTool(&mcp.Tool{Name: "echo", Description: "echo"},
			func(ctx context.Context, req *mcp.CallToolRequest, in countInput) (*mcp.CallToolResult, countOutput, error) {
				return nil, countOutput{}, nil
			}),
		WithDepsTool(&mcp.Tool{Name: "count_calls", Description: "count calls"},
			func(d *Deps) func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
				built = d
				return func(ctx context.Context, req *mcp.CallToolRequest, in countInput) (*mcp.CallToolResult, countOutput, error) {
					return nil, countOutput{}, nil
				}
			}),
		WithPrompt(&mcp.Prompt{Name: "hello"}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{}, nil
		}),
	)
	require.NoError(t, err)
	assert.Same(t, s.Deps(), built)
}

func TestAddTool_PanicsOnNilSlice(t *testing.T) {
	type badOutput struct {
		Items []string `json:"items"`
	}
	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	assert.Panics(t, func() {
		AddTool(srv, &mcp.Tool{Name: "bad"}, func(ctx context.Context, req *mcp.CallToolRequest, in countInput) (*mcp.CallToolResult, badOutput, error) {
			return nil, badOutput{}, nil
		})
	})
}
