// Runs an MCP server with the weather tools on standard input and output.
// The API key is read from TWC_API_KEY, and TWC_UNITS and TWC_LANGUAGE set
// the defaults for tool calls.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// Packages
	twc "github.com/mutablelogic/go-twc"
	mcp "github.com/mutablelogic/go-twc/pkg/mcp"
	tool "github.com/mutablelogic/go-twc/pkg/tool"
	version "github.com/mutablelogic/go-twc/pkg/version"
	weather "github.com/mutablelogic/go-twc/pkg/weather"
	zap "go.uber.org/zap"
)

const (
	name = "twc-mcp"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log); err != nil {
		log.Error("mcp server failed", zap.Error(err))
		os.Exit(-1)
	}
	log.Info("mcp server stopped", zap.NamedError("reason", ctx.Err()))
}

func run(ctx context.Context, log *zap.Logger) error {
	key := os.Getenv("TWC_API_KEY")
	if key == "" {
		return twc.ErrMissingCredential.With("TWC_API_KEY")
	}

	// Tool defaults
	opts := []weather.Opt{weather.WithLogger(log)}
	if units := os.Getenv("TWC_UNITS"); units != "" {
		opts = append(opts, weather.WithUnits(units))
	}
	if language := os.Getenv("TWC_LANGUAGE"); language != "" {
		opts = append(opts, weather.WithLanguage(language))
	}

	// Make the toolkit
	tools, err := weather.NewTools(key, opts...)
	if err != nil {
		return err
	}
	toolkit, err := tool.NewToolkit(tools...)
	if err != nil {
		return err
	}

	// Create and run the server
	server, err := mcp.New(name, version.Version(), toolkit, mcp.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("running mcp server", zap.Stringer("tools", toolkit))
	return server.Run(ctx)
}
