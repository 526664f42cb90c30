package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	mcp "github.com/mutablelogic/go-twc/pkg/mcp"
	table "github.com/mutablelogic/go-twc/pkg/ui/table"
	version "github.com/mutablelogic/go-twc/pkg/version"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List tools." group:"TOOL"`
	RunTool   RunToolCommand   `cmd:"" name:"tool" help:"Run a tool with JSON input." group:"TOOL"`
}

type MCPCommands struct {
	Server MCPServerCommand `cmd:"" name:"mcp" help:"Start an MCP server on standard input and output." group:"SERVER"`
}

type VersionCommands struct {
	Version VersionCommand `cmd:"" name:"version" help:"Print version information."`
}

type ListToolsCommand struct{}

type RunToolCommand struct {
	Name  string `arg:"" name:"name" help:"Tool name"`
	Input string `arg:"" name:"input" optional:"" help:"JSON input for the tool (optional)"`
}

type MCPServerCommand struct{}

type VersionCommand struct{}

// toolInfo describes a tool in the tools listing
type toolInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Schema      any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// toolTable implements table.TableData for the tools listing
type toolTable []toolInfo

var _ table.TableData = toolTable(nil)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	output := make([]toolInfo, 0, len(toolkit.Tools()))
	for _, t := range toolkit.Tools() {
		info := toolInfo{Name: t.Name(), Description: t.Description()}
		if ctx.Verbose {
			if schema, err := t.Schema(); err == nil {
				info.Schema = schema
			}
		}
		output = append(output, info)
	}

	// Print
	return ctx.Write(toolTable(output))
}

func (cmd *RunToolCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RunToolCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Run the tool
	var input json.RawMessage
	if cmd.Input != "" {
		input = json.RawMessage(cmd.Input)
	}
	result, err := toolkit.Run(parent, cmd.Name, input)
	if err != nil {
		return err
	}

	// Print
	return ctx.Write(result)
}

func (cmd *MCPServerCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// Create MCP server
	server, err := mcp.New(ctx.execName, version.Version(), toolkit, mcp.WithLogger(ctx.log))
	if err != nil {
		return err
	}
	ctx.log.Info("starting MCP server", zap.Stringer("tools", toolkit))

	// Run the server on stdio
	return server.Run(ctx.ctx)
}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	_, err := fmt.Fprintln(os.Stdout, string(version.JSON(ctx.execName)))
	return err
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE

func (t toolTable) Header() []string {
	return []string{"NAME", "DESCRIPTION"}
}

func (t toolTable) Len() int {
	return len(t)
}

func (t toolTable) Row(i int) []any {
	return []any{table.Bold{Value: t[i].Name}, t[i].Description}
}
