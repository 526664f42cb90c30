package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// The Weather Company Data API
	Key      string        `name:"key" env:"TWC_API_KEY" help:"The Weather Company API key"`
	Endpoint string        `name:"endpoint" env:"TWC_ENDPOINT" default:"https://api.weather.com" help:"API endpoint"`
	Units    string        `name:"units" enum:"e,m,h" default:"e" help:"Units of measure: e (english), m (metric) or h (hybrid)"`
	Language string        `name:"language" default:"en-US" help:"Language tag"`
	Strict   bool          `name:"strict" help:"Report ignored units, languages and methods as errors"`
	Escape   bool          `name:"escape" help:"Escape query values"`
	Timeout  time.Duration `name:"timeout" default:"30s" help:"Request timeout"`

	// Output
	Format string          `name:"format" enum:"json,yaml,table" default:"json" help:"Output format"`
	Config kong.ConfigFlag `name:"config" help:"Load defaults from a YAML file"`

	// Context
	ctx      context.Context
	tracer   trace.Tracer
	log      *zap.Logger
	execName string
}

type CLI struct {
	Globals
	WeatherCommands  `embed:""`
	LocationCommands `embed:""`
	ToolCommands     `embed:""`
	MCPCommands      `embed:""`
	VersionCommands  `embed:""`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	configPath = "~/.config/twc/config.yaml"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	name := execName()
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("The Weather Company Data API command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(configLoader, configPath),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = name
	cli.Globals.tracer = otel.Tracer(name)

	// Create a logger
	log, err := newLogger(cli.Debug)
	if err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
	defer log.Sync()
	cli.Globals.log = log

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// newLogger returns a logger which writes to stderr, since stdout carries
// command output
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	config.Encoding = "console"
	return config.Build()
}
