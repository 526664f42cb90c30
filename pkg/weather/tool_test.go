package weather

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	twc "github.com/mutablelogic/go-twc"
	tool "github.com/mutablelogic/go-twc/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func newTestToolkit(t *testing.T, stub *stubTransport) *tool.Toolkit {
	t.Helper()
	tools, err := NewTools("KEY", WithTransport(stub))
	require.NoError(t, err)
	toolkit, err := tool.NewToolkit(tools...)
	require.NoError(t, err)
	return toolkit
}

func Test_tool_001(t *testing.T) {
	// Tool names and schemas
	assert := assert.New(t)

	_, err := NewTools("")
	assert.ErrorIs(err, twc.ErrMissingCredential)
	_, err = NewTools("KEY", WithUnits("x"))
	assert.ErrorIs(err, twc.ErrBadParameter)

	tools, err := NewTools("KEY")
	assert.NoError(err)
	names := make([]string, 0, len(tools))
	for _, tool_ := range tools {
		names = append(names, tool_.Name())
		assert.NotEmpty(tool_.Description())
		schema, err := tool_.Schema()
		assert.NoError(err)
		assert.NotNil(schema)
	}
	assert.Equal([]string{"twc_observations", "twc_forecast_daily", "twc_forecast_hourly", "twc_point", "twc_search"}, names)
}

func Test_tool_002(t *testing.T) {
	// The location schema restricts units
	assert := assert.New(t)
	tools, err := NewTools("KEY")
	require.NoError(t, err)

	schema, err := tools[0].Schema()
	assert.NoError(err)
	if assert.Contains(schema.Properties, "units") {
		assert.Equal([]any{"e", "m", "h"}, schema.Properties["units"].Enum)
	}
	assert.Empty(schema.Required)

	schema, err = tools[3].Schema()
	assert.NoError(err)
	assert.ElementsMatch([]string{"key", "value"}, schema.Required)
}

func Test_tool_003(t *testing.T) {
	// Observations by geocode and by postal code
	assert := assert.New(t)
	stub := newStub(`{"observation":{"temp":12}}`)
	toolkit := newTestToolkit(t, stub)

	result, err := toolkit.Run(context.Background(), "twc_observations", json.RawMessage(`{"geocode":"33.74, -84.39","units":"m"}`))
	assert.NoError(err)
	assert.Equal(map[string]any{"observation": map[string]any{"temp": float64(12)}}, result)

	_, err = toolkit.Run(context.Background(), "twc_forecast_daily", json.RawMessage(`{"postal":"30303","country":"US","language":"es-US"}`))
	assert.NoError(err)

	assert.Equal([]string{
		"https://api.weather.com/v1/geocode/33.74/-84.39/observations/current.json?apiKey=KEY&units=m&language=en-US",
		"https://api.weather.com/v1/location/30303:4:US/forecast/daily/15day.json?apiKey=KEY&units=e&language=es-US",
	}, stub.URLs())
}

func Test_tool_004(t *testing.T) {
	// Location input errors
	assert := assert.New(t)
	stub := newStub(`{}`)
	toolkit := newTestToolkit(t, stub)

	_, err := toolkit.Run(context.Background(), "twc_forecast_hourly", json.RawMessage(`{}`))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = toolkit.Run(context.Background(), "twc_forecast_hourly", json.RawMessage(`{"geocode":"33.74"}`))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = toolkit.Run(context.Background(), "twc_forecast_hourly", json.RawMessage(`{"postal":"30303"}`))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = toolkit.Run(context.Background(), "twc_forecast_hourly", json.RawMessage(`{"geocode":"1,2","units":"x"}`))
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.Empty(stub.URLs())
}

func Test_tool_005(t *testing.T) {
	// Point and search
	assert := assert.New(t)
	stub := newStub(`{"location":{}}`)
	toolkit := newTestToolkit(t, stub)

	_, err := toolkit.Run(context.Background(), "twc_point", json.RawMessage(`{"key":"postalKey","value":"30303:US"}`))
	assert.NoError(err)
	_, err = toolkit.Run(context.Background(), "twc_search", json.RawMessage(`{"query":"Atlanta","location_type":"city","language":"de-DE"}`))
	assert.NoError(err)

	_, err = toolkit.Run(context.Background(), "twc_point", json.RawMessage(`{"key":"postalKey"}`))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = toolkit.Run(context.Background(), "twc_search", json.RawMessage(`{"query":"","location_type":"city"}`))
	assert.ErrorIs(err, twc.ErrBadParameter)

	assert.Equal([]string{
		"https://api.weather.com/v3/location/point?postalKey=30303:US&apiKey=KEY&format=json&language=en-US",
		"https://api.weather.com/v3/location/search?query=Atlanta&locationType=city&apiKey=KEY&format=json&language=de-DE",
	}, stub.URLs())
}

func Test_tool_006(t *testing.T) {
	// Upstream errors are returned from the tool
	assert := assert.New(t)
	toolkit := newTestToolkit(t, newStub(`{"success":false,"errors":[{"error":{"code":"NDF-0001","message":"No data found"}}]}`))

	result, err := toolkit.Run(context.Background(), "twc_search", json.RawMessage(`{"query":"Nowhere","location_type":"city"}`))
	assert.ErrorIs(err, twc.ErrUpstream)
	assert.ErrorContains(err, "NDF-0001 No data found")
	assert.NotNil(result)
}
