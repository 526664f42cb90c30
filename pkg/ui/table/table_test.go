package table_test

import (
	"encoding/json"
	"testing"

	// Packages
	table "github.com/mutablelogic/go-twc/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(""))
	assert.Equal("72", table.FormatCell(float64(72)))
	assert.Equal("-84.39", table.FormatCell(-84.39))
	assert.Equal("true", table.FormatCell(true))
	assert.Equal("Atlanta, -, 3", table.FormatCell([]any{"Atlanta", nil, float64(3)}))
	assert.Equal("abc…", table.Truncate("abcdef", 4))
	assert.Equal("a b", table.Truncate("a\nb", 4))
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{
		"observation": {"temp": 72, "wx_phrase": "Sunny"},
		"location": {"city": ["Atlanta", "Athens"]},
		"forecasts": [{"num": 1}, {"num": 2}],
		"metadata": null
	}`), &v))

	fields := table.NewFields(v)
	assert.Equal(table.Fields{
		{Path: "forecasts.0.num", Value: float64(1)},
		{Path: "forecasts.1.num", Value: float64(2)},
		{Path: "location.city", Value: []any{"Atlanta", "Athens"}},
		{Path: "metadata", Value: nil},
		{Path: "observation.temp", Value: float64(72)},
		{Path: "observation.wx_phrase", Value: "Sunny"},
	}, fields)
	assert.Equal([]string{"FIELD", "VALUE"}, fields.Header())
	assert.Equal([]any{"metadata", nil}, fields.Row(3))
}

func Test_table_003(t *testing.T) {
	assert := assert.New(t)
	fields := table.NewFields(map[string]any{"city": "Atlanta", "temp": float64(21)})
	output := table.Render(fields)
	assert.Contains(output, "FIELD")
	assert.Contains(output, "Atlanta")
	assert.Contains(output, "21")
}
