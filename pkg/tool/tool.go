package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	twc "github.com/mutablelogic/go-twc"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names. The input schema of
// each tool is resolved once, when the tool is registered.
type Toolkit struct {
	tools map[string]*entry
}

type entry struct {
	Tool
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]*entry),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, sorted by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, e := range tk.tools {
		result = append(result, e.Tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Register adds tools to the toolkit. A tool is rejected when it is nil, its
// name is not an identifier or is already registered, or its schema does not
// resolve. Nothing is registered when any tool is rejected.
func (tk *Toolkit) Register(tools ...Tool) error {
	entries := make(map[string]*entry, len(tools))
	for _, t := range tools {
		if t == nil {
			return twc.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !types.IsIdentifier(name) {
			return twc.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return twc.ErrBadParameter.Withf("duplicate tool name: %q", name)
		} else if _, exists := entries[name]; exists {
			return twc.ErrBadParameter.Withf("duplicate tool name: %q", name)
		}
		e, err := newEntry(t)
		if err != nil {
			return err
		}
		entries[name] = e
	}
	for name, e := range entries {
		tk.tools[name] = e
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	if e, exists := tk.tools[name]; exists {
		return e.Tool
	}
	return nil
}

// Schema returns the input schema of a tool, or nil if not found
func (tk *Toolkit) Schema(name string) *jsonschema.Schema {
	if e, exists := tk.tools[name]; exists {
		return e.schema
	}
	return nil
}

// Run a tool by name. Empty or null input is validated as an empty object,
// any other input must be a JSON object which matches the tool schema.
func (tk *Toolkit) Run(ctx context.Context, name string, input json.RawMessage) (any, error) {
	e, exists := tk.tools[name]
	if !exists {
		return nil, twc.ErrNotFound.Withf("tool not found: %q", name)
	}
	if err := e.validate(input); err != nil {
		return nil, err
	}
	return e.Run(ctx, input)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newEntry(t Tool) (*entry, error) {
	schema, err := t.Schema()
	if err != nil {
		return nil, twc.ErrBadParameter.Withf("%s: %v", t.Name(), err)
	} else if schema == nil {
		return &entry{Tool: t}, nil
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, twc.ErrBadParameter.Withf("%s: %v", t.Name(), err)
	}
	return &entry{Tool: t, schema: schema, resolved: resolved}, nil
}

func (e *entry) validate(input json.RawMessage) error {
	if e.resolved == nil {
		return nil
	}
	object := map[string]any{}
	if data := bytes.TrimSpace(input); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, &object); err != nil {
			return twc.ErrBadParameter.Withf("%s: input is not a JSON object: %v", e.Name(), err)
		}
	}
	if err := e.resolved.Validate(object); err != nil {
		return twc.ErrBadParameter.Withf("%s: %v", e.Name(), err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	names := make([]string, 0, len(tk.tools))
	for _, t := range tk.Tools() {
		names = append(names, t.Name())
	}
	return types.Stringify(names)
}
