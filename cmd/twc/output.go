package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	// Packages
	table "github.com/mutablelogic/go-twc/pkg/ui/table"
	term "golang.org/x/term"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Write v to stdout in the output format
func (g *Globals) Write(v any) error {
	return write(os.Stdout, g.Format, v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// write v as a table, as YAML, or as JSON which is indented when w is a
// terminal
func write(w io.Writer, format string, v any) error {
	switch format {
	case "table":
		data, ok := v.(table.TableData)
		if !ok {
			data = table.NewFields(v)
		}
		_, err := fmt.Fprintln(w, table.Render(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		if isTerminal(w) {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
