package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/internal/convert"
	"github.com/usestring/har2raml/internal/mcp"
	"github.com/usestring/har2raml/internal/mcp/tools"
	"github.com/usestring/har2raml/pkg/client"
)

// Deps contains the dependencies available to custom tools.
type Deps struct {
	Config *config.Config
	Engine *convert.Engine
	Client *client.Client // nil when powhttp is disabled
}

// Server is the har2raml MCP server.
type Server struct {
	internal *mcp.Server
	deps     *Deps
}

// NewServer creates a server with the builtin har2raml tools. Configuration
// is loaded from the environment unless WithConfig is given.
func NewServer(opts ...Option) (*Server, error) {
	sc := &serverConfig{}
	for _, opt := range opts {
		opt(sc)
	}
	if sc.config == nil {
		sc.config = config.Load()
	}

	engine, err := convert.New(sc.config.SchemaCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion engine: %w", err)
	}

	deps := &Deps{Config: sc.config, Engine: engine}
	toolDeps := &tools.Deps{Config: sc.config, Engine: engine}
	if !sc.disablePowHTTP {
		c := sc.client
		if c == nil && sc.config.PowHTTPBaseURL != "" {
			c = client.New(
				client.WithBaseURL(sc.config.PowHTTPBaseURL),
				client.WithTimeout(sc.config.HTTPClientTimeout),
			)
		}
		if c != nil {
			deps.Client = c
			toolDeps.Client = c
		}
	}

	var internalOpts []mcp.ServerOption
	if sc.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithoutPrompts())
	}
	for _, fn := range sc.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range sc.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return &Server{internal: internal, deps: deps}, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
