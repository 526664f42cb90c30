// Package table provides a terminal table renderer backed by lipgloss.
// Consumers supply data via the TableData interface rather than building
// lipgloss tables directly.
package table

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a terminal table.
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Values are converted to
	// strings via FormatCell. Return nil to skip a row.
	// Wrap a value in Bold{} to render it in bold.
	Row(i int) []any
}

// Bold wraps a cell value so that FormatCell renders it in bold.
type Bold struct{ Value any }

// Fields implements TableData for a decoded JSON value, with one row for
// each leaf value keyed by its dotted path
type Fields []Field

// Field is a leaf of a decoded JSON value
type Field struct {
	Path  string
	Value any
}

var _ TableData = Fields(nil)

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table data as a string suitable for terminal output.
// Columns are auto-sized to the terminal width with word wrapping enabled.
func Render(data TableData) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		t.Row(cells...)
	}

	// Only constrain to terminal width if the natural render exceeds it
	result := t.Render()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		// Check the widest line in the rendered output
		widest := 0
		for _, line := range strings.Split(result, "\n") {
			if n := len([]rune(line)); n > widest {
				widest = n
			}
		}
		if widest > w {
			t.Width(w)
			result = t.Render()
		}
	}

	return result
}

// NewFields flattens a decoded JSON value into fields, with object keys in
// sorted order. Arrays of scalars become a single comma separated field,
// other arrays are indexed by position.
func NewFields(v any) Fields {
	var result Fields
	flatten("", v, &result)
	return result
}

///////////////////////////////////////////////////////////////////////////////
// FIELDS

func (f Fields) Header() []string {
	return []string{"FIELD", "VALUE"}
}

func (f Fields) Len() int {
	return len(f)
}

func (f Fields) Row(i int) []any {
	return []any{f[i].Path, f[i].Value}
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a table cell.
// It handles nil, empty strings, numbers, arrays and Bold wrapping.
func FormatCell(v any) string {
	if v == nil {
		return "-"
	}
	switch val := v.(type) {
	case Bold:
		return boldStyle.Render(FormatCell(val.Value))
	case string:
		if val == "" {
			return "-"
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		cells := make([]string, len(val))
		for i, v := range val {
			cells[i] = FormatCell(v)
		}
		return strings.Join(cells, ", ")
	default:
		s := fmt.Sprint(val)
		if s == "" {
			return "-"
		}
		return s
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func flatten(path string, v any, result *Fields) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			flatten(join(path, key), val[key], result)
		}
	case []any:
		if isScalars(val) {
			*result = append(*result, Field{Path: path, Value: val})
			return
		}
		for i, child := range val {
			flatten(join(path, strconv.Itoa(i)), child, result)
		}
	default:
		*result = append(*result, Field{Path: path, Value: val})
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func isScalars(values []any) bool {
	for _, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}
