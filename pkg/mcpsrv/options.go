package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/pkg/client"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config
	client *client.Client

	disablePowHTTP        bool
	disableBuiltinPrompts bool

	registrations             []func(*mcp.Server)
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg *config.Config) Option {
	return func(sc *serverConfig) {
		sc.config = cfg
	}
}

// WithClient sets the powhttp client. Without it a client for
// POWHTTP_BASE_URL is created.
func WithClient(c *client.Client) Option {
	return func(sc *serverConfig) {
		sc.client = c
	}
}

// WithoutPowHTTP disables the powhttp session source.
func WithoutPowHTTP() Option {
	return func(sc *serverConfig) {
		sc.disablePowHTTP = true
	}
}

// WithoutBuiltinPrompts disables the builtin prompts.
func WithoutBuiltinPrompts() Option {
	return func(sc *serverConfig) {
		sc.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(sc *serverConfig) {
		sc.registrations = append(sc.registrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool whose handler is built from Deps.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(sc *serverConfig) {
		sc.deferredToolRegistrations = append(sc.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt with the server.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(sc *serverConfig) {
		sc.registrations = append(sc.registrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}
