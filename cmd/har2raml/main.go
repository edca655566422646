package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/har2raml/internal/cli"
	"github.com/usestring/har2raml/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables (see internal/config);
	// command-line flags override it.
	if err := cli.New(config.Load()).Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
