// Implements an MCP server which exposes a toolkit over standard input and
// output, using the Model Context Protocol SDK.
package mcp

import (
	"context"
	"encoding/json"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	twc "github.com/mutablelogic/go-twc"
	tool "github.com/mutablelogic/go-twc/pkg/tool"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	*sdk.Server

	// Private members
	toolkit *tool.Toolkit
	log     *zap.Logger
}

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version, which serves
// every tool in the toolkit
func New(name, version string, toolkit *tool.Toolkit, opts ...Opt) (*Server, error) {
	if toolkit == nil {
		return nil, twc.ErrBadParameter.With("toolkit is required")
	}

	self := &Server{
		Server:  sdk.NewServer(&sdk.Implementation{Name: name, Version: version}, nil),
		toolkit: toolkit,
		log:     zap.NewNop(),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register the tools
	for _, t := range toolkit.Tools() {
		schema := toolkit.Schema(t.Name())
		if schema == nil {
			return nil, twc.ErrBadParameter.Withf("%s: missing input schema", t.Name())
		}
		self.AddTool(&sdk.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		}, self.handleCallTool(t.Name()))
	}

	// Return success
	return self, nil
}

// Run the server over standard input and output in the foreground, until
// the context is done or the client disconnects
func (server *Server) Run(ctx context.Context) error {
	return server.Server.Run(ctx, &sdk.StdioTransport{})
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleCallTool(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var input json.RawMessage
		if req.Params != nil {
			input = req.Params.Arguments
		}
		log := server.log.With(zap.String("tool", name))

		// Return the error as a tool error response (not a protocol error)
		result, err := server.toolkit.Run(ctx, name, input)
		if err != nil {
			log.Debug("tool error", zap.Error(err))
			return &sdk.CallToolResult{
				Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		// Marshal the result to JSON text
		data, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		log.Debug("tool result", zap.Int("bytes", len(data)))

		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
		}, nil
	}
}
