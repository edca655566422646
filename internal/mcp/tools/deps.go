package tools

import (
	"context"

	"github.com/usestring/har2raml/internal/capture"
	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/internal/convert"
	"github.com/usestring/har2raml/pkg/client"
)

// SessionSource is the part of the powhttp client the tools use.
type SessionSource interface {
	capture.EntryLister
	ListSessions(ctx context.Context) ([]client.Session, error)
}

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Engine *convert.Engine
	// Client is optional; tools that read powhttp sessions fail without it.
	Client SessionSource
}
