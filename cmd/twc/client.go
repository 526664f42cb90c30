package main

import (
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	twc "github.com/mutablelogic/go-twc"
	tool "github.com/mutablelogic/go-twc/pkg/tool"
	version "github.com/mutablelogic/go-twc/pkg/version"
	weather "github.com/mutablelogic/go-twc/pkg/weather"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns a weather client configured from the global flags. The key
// is not checked here: a dispatch without one reports a missing credential.
func (g *Globals) Client() (*weather.Client, error) {
	return weather.New(g.Key, g.weatherOpts()...)
}

// Toolkit returns a toolkit with the weather tools
func (g *Globals) Toolkit() (*tool.Toolkit, error) {
	if g.Key == "" {
		return nil, twc.ErrMissingCredential.With("set TWC_API_KEY or use --key")
	}
	tools, err := weather.NewTools(g.Key, g.weatherOpts()...)
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(tools...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) weatherOpts() []weather.Opt {
	opts := []weather.Opt{
		weather.WithEndpoint(g.Endpoint),
		weather.WithUnits(g.Units),
		weather.WithLanguage(g.Language),
		weather.WithClientOpts(g.clientOpts()...),
	}
	if g.log != nil {
		opts = append(opts, weather.WithLogger(g.log))
	}
	if g.tracer != nil {
		opts = append(opts, weather.WithTracer(g.tracer))
	}
	if g.Strict {
		opts = append(opts, weather.WithStrict())
	}
	if g.Escape {
		opts = append(opts, weather.WithQueryEscape())
	}
	return opts
}

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{
		client.OptUserAgent(version.UserAgent(g.execName)),
	}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.Timeout))
	}
	return opts
}
