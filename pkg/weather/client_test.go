package weather

import (
	"context"
	"testing"

	// Packages
	twc "github.com/mutablelogic/go-twc"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_client_001(t *testing.T) {
	// Defaults
	assert := assert.New(t)
	c, err := New("KEY")
	assert.NoError(err)
	assert.Equal(Options{ApiKey: "KEY", Format: "json", Units: "e", Language: "en-US"}, c.Options())
	assert.Equal("", c.Query())
	assert.Equal("", c.Method())
	assert.IsType(&HTTPTransport{}, c.transport)
}

func Test_client_002(t *testing.T) {
	// Options
	assert := assert.New(t)
	c, err := New("KEY", WithEndpoint("http://localhost:8080/"), WithUnits(UnitsMetric), WithLanguage(" de-DE "))
	assert.NoError(err)
	assert.Equal("http://localhost:8080", c.endpoint)
	assert.Equal("m", c.Options().Units)
	assert.Equal("de-DE", c.Options().Language)

	_, err = New("KEY", WithUnits("x"))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = New("KEY", WithEndpoint(""))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = New("KEY", WithLanguage(" "))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = New("KEY", WithTransport(nil))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = New("KEY", WithLogger(nil))
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = New("KEY", WithTracer(nil))
	assert.ErrorIs(err, twc.ErrBadParameter)
}

func Test_client_003(t *testing.T) {
	// Units accepts only known codes, anything else is ignored
	tests := []struct {
		code   string
		expect string
	}{
		{"e", "e"},
		{"m", "m"},
		{"h", "h"},
		{"x", "h"},
		{"", "h"},
		{"M", "h"},
	}
	assert := assert.New(t)
	c, err := New("KEY")
	require.NoError(t, err)
	for _, test := range tests {
		assert.Same(c, c.Units(test.code))
		assert.Equal(test.expect, c.Options().Units, "units %q", test.code)
	}
}

func Test_client_004(t *testing.T) {
	// Language is trimmed and otherwise stored verbatim
	assert := assert.New(t)
	c, err := New("KEY")
	require.NoError(t, err)
	assert.Same(c, c.Language("  fr-FR\t"))
	assert.Equal("fr-FR", c.Options().Language)
	c.Language("not a language")
	assert.Equal("not a language", c.Options().Language)
}

func Test_client_005(t *testing.T) {
	// Geocode
	tests := []struct {
		lat, lng string
		expect   string
	}{
		{"33.74", "-84.39", "geocode/33.74/-84.39"},
		{"33.74,-84.39", "", "geocode/33.74/-84.39"},
		{"33.74 , -84.39", "", "geocode/33.74/-84.39"},
		{"33.74,-84.39", "12.0", "geocode/33.74/-84.39"},
		{" 33.74", "-84.39 ", "geocode/ 33.74/-84.39 "},
		{",-84.39", "12.0", "geocode/,-84.39/12.0"},
	}
	for _, test := range tests {
		t.Run(test.expect, func(t *testing.T) {
			assert := assert.New(t)
			c, err := New("KEY")
			require.NoError(t, err)
			r, err := c.Geocode(test.lat, test.lng)
			assert.NoError(err)
			assert.Same(c, r)
			assert.Equal(test.expect, c.Query())
		})
	}
}

func Test_client_006(t *testing.T) {
	// Geocode requires a latitude
	assert := assert.New(t)
	c, err := New("KEY")
	require.NoError(t, err)
	r, err := c.Geocode("", "-84.39")
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.Nil(r)
}

func Test_client_007(t *testing.T) {
	// Location
	assert := assert.New(t)
	c, err := New("KEY")
	require.NoError(t, err)

	r, err := c.Location("94024", "US")
	assert.NoError(err)
	assert.Same(c, r)
	assert.Equal("location/94024:4:US", c.Query())

	_, err = c.Location(" 30303 ", " US ")
	assert.NoError(err)
	assert.Equal("location/30303:4:US", c.Query())

	_, err = c.Location("", "US")
	assert.ErrorIs(err, twc.ErrBadParameter)
	_, err = c.Location("94024", "")
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.Equal("location/30303:4:US", c.Query())
}

func Test_client_008(t *testing.T) {
	// Point and search require both arguments, without dispatching
	assert := assert.New(t)
	stub := newStub(`{}`)
	c := newTestClient(t, "KEY", stub)

	for _, args := range [][2]string{{"", "x"}, {"x", ""}, {"", ""}} {
		future, err := c.Point(context.Background(), args[0], args[1])
		assert.ErrorIs(err, twc.ErrBadParameter)
		assert.Nil(future)
		future, err = c.Search(context.Background(), args[0], args[1])
		assert.ErrorIs(err, twc.ErrBadParameter)
		assert.Nil(future)
	}
	assert.Empty(stub.URLs())
}

func Test_client_009(t *testing.T) {
	// Call records a valid method
	assert := assert.New(t)
	c := newTestClient(t, "KEY", newStub(`{}`))
	_, err := c.Location("94024", "US")
	require.NoError(t, err)

	future, err := c.Call(context.Background(), MethodHourlyForecast)
	assert.NoError(err)
	_, err = await(t, future)
	assert.NoError(err)
	assert.Equal(MethodHourlyForecast, c.Method())

	future, err = c.Call(context.Background(), "forecast/hourly/48hour")
	assert.NoError(err)
	_, err = await(t, future)
	assert.NoError(err)
	assert.Equal(MethodHourlyForecast, c.Method())
}

func Test_client_010(t *testing.T) {
	// Strict mode reports ignored values from the next terminal operation
	assert := assert.New(t)
	stub := newStub(`{}`)
	c := newTestClient(t, "KEY", stub, WithStrict())

	future, err := c.Units("x").Point(context.Background(), "geocode", "33.74,-84.39")
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.ErrorContains(err, `"x"`)
	assert.Nil(future)
	assert.Equal("e", c.Options().Units)

	// The error is cleared once returned
	future, err = c.Point(context.Background(), "geocode", "33.74,-84.39")
	assert.NoError(err)
	_, err = await(t, future)
	assert.NoError(err)

	// Malformed language tags are rejected
	_, err = c.Language("!!").Search(context.Background(), "Atlanta", "city")
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.Equal("en-US", c.Options().Language)

	// Unknown methods are rejected
	_, err = c.Location("94024", "US")
	require.NoError(t, err)
	future, err = c.Call(context.Background(), "invalid")
	assert.ErrorIs(err, twc.ErrBadParameter)
	assert.Nil(future)

	assert.Len(stub.URLs(), 1)
}

func Test_client_011(t *testing.T) {
	// Escaped values
	assert := assert.New(t)
	stub := newStub(`{}`)
	c := newTestClient(t, "KEY", stub, WithQueryEscape(), WithEndpoint("http://localhost"))

	future, err := c.Search(context.Background(), "New York", "city")
	assert.NoError(err)
	_, err = await(t, future)
	assert.NoError(err)
	assert.Equal([]string{
		"http://localhost/v3/location/search?query=New+York&locationType=city&apiKey=KEY&format=json&language=en-US",
	}, stub.URLs())
}
