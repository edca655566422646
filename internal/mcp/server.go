// Package mcp serves the har2raml conversion over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/har2raml/internal/mcp/prompts"
	"github.com/usestring/har2raml/internal/mcp/tools"
)

// Version is reported to MCP clients.
const Version = "0.8.0"

// Server wraps the MCP server with the har2raml tools and prompts.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps

	disablePrompts      bool
	customRegistrations []func(*sdkmcp.Server)
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithoutPrompts skips registering the builtin prompts.
func WithoutPrompts() ServerOption {
	return func(s *Server) {
		s.disablePrompts = true
	}
}

// WithCustomRegistration adds a custom registration callback.
// The callback receives the underlying MCP server and can register
// tools, prompts, or resources directly.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) {
		s.customRegistrations = append(s.customRegistrations, fn)
	}
}

// NewServer creates a new MCP server with the provided dependencies and options.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil || deps.Config == nil || deps.Engine == nil {
		return nil, fmt.Errorf("deps with config and engine are required")
	}

	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{
			Name:    "har2raml",
			Version: Version,
		},
		nil,
	)
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	tools.Register(s.mcpServer, deps)
	if !s.disablePrompts {
		prompts.Register(s.mcpServer, &prompts.Config{
			PowHTTPEnabled: deps.Client != nil,
			DefaultTitle:   deps.Config.Title,
		})
	}

	for _, fn := range s.customRegistrations {
		fn(s.mcpServer)
	}

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
