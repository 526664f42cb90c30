/*
weather implements an API client for The Weather Company Data API
https://api.weather.com
*/
package weather

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	twc "github.com/mutablelogic/go-twc"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client accumulates query configuration through chained setters, and
// dispatches a request on a terminal operation (Point, Search or Call).
// A client is not safe for concurrent use, but each dispatch works on a
// snapshot of the configuration so the client can be reused immediately.
type Client struct {
	endpoint   string
	transport  Transport
	clientOpts []client.ClientOpt
	tracer     trace.Tracer
	log        *zap.Logger
	strict     bool
	escape     bool

	// Configuration
	options  Options
	location locationQuery
	method   string

	// First strict mode error, returned by the next terminal operation
	err error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint   = "https://api.weather.com"
	tracerName = "github.com/mutablelogic/go-twc/pkg/weather"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client with an API key. An empty key is not an error here,
// dispatch reports it instead.
func New(apiKey string, opts ...Opt) (*Client, error) {
	c := &Client{
		endpoint: endPoint,
		tracer:   otel.Tracer(tracerName),
		log:      zap.NewNop(),
		options: Options{
			ApiKey:   apiKey,
			Format:   defaultFormat,
			Units:    defaultUnits,
			Language: defaultLanguage,
		},
	}
	if err := c.apply(opts...); err != nil {
		return nil, err
	}

	// Create the default transport
	if c.transport == nil {
		if transport, err := NewTransport(c.endpoint, c.clientOpts...); err != nil {
			return nil, err
		} else {
			c.transport = transport
		}
	}

	// Return success
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PROPERTIES

// Options returns the current query options
func (c *Client) Options() Options {
	return c.options
}

// Query returns the location fragment set by Geocode or Location
func (c *Client) Query() string {
	return c.location.fragment(false)
}

// Method returns the method set by the last successful Call
func (c *Client) Method() string {
	return c.method
}

///////////////////////////////////////////////////////////////////////////////
// SETTERS

// Units sets the unit code: e (english), m (metric) or h (hybrid). Any
// other value is ignored.
func (c *Client) Units(code string) *Client {
	if isUnits(code) {
		c.options.Units = code
		return c
	}
	c.log.Debug("ignoring units", zap.String("units", code))
	if c.strict {
		c.fail(twc.ErrBadParameter.Withf("invalid units %q", code))
	}
	return c
}

// Language sets the language tag, with surrounding whitespace removed
func (c *Client) Language(tag string) *Client {
	tag = strings.TrimSpace(tag)
	if c.strict {
		if _, err := language.Parse(tag); err != nil {
			c.fail(twc.ErrBadParameter.Withf("invalid language %q", tag))
			return c
		}
	}
	c.options.Language = tag
	return c
}

// Geocode sets the location as a latitude and longitude. When lat contains
// a comma it is split into latitude and longitude and lng is ignored.
func (c *Client) Geocode(lat, lng string) (*Client, error) {
	if lat == "" {
		return nil, twc.ErrBadParameter.With("latitude (and longitude) are required in geocode request")
	}
	if strings.Index(lat, ",") > 0 {
		parts := strings.Split(lat, ",")
		lat, lng = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	c.location = locationQuery{kind: kindGeocode, first: lat, second: lng}
	return c, nil
}

// Location sets the location as a postal code and country code
func (c *Client) Location(postal, country string) (*Client, error) {
	if postal == "" || country == "" {
		return nil, twc.ErrBadParameter.With("postal code and country are required in location request")
	}
	c.location = locationQuery{kind: kindLocation, first: strings.TrimSpace(postal), second: strings.TrimSpace(country)}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// TERMINAL OPERATIONS

// Point dispatches a v3 point lookup, for example Point(ctx, "geocode", "33.74,-84.39").
// The returned error is only set for missing arguments; the outcome of the
// request is delivered to fn and through the future.
func (c *Client) Point(ctx context.Context, key, value string, fn ...CompletionFunc) (*Future, error) {
	if key == "" || value == "" {
		return nil, twc.ErrBadParameter.With("key and value are required in point request")
	}
	return c.start(ctx, &pointRequest{key: key, value: value}, fn)
}

// Search dispatches a v3 location search
func (c *Client) Search(ctx context.Context, query, locationType string, fn ...CompletionFunc) (*Future, error) {
	if query == "" || locationType == "" {
		return nil, twc.ErrBadParameter.With("query and location type are required in search request")
	}
	return c.start(ctx, &searchRequest{text: query, locationType: locationType}, fn)
}

// Call dispatches a v1 method for the location set by Geocode or Location.
// Unknown methods are ignored, so the previous method (if any) is used.
func (c *Client) Call(ctx context.Context, method string, fn ...CompletionFunc) (*Future, error) {
	if isMethod(method) {
		c.method = method
	} else {
		c.log.Debug("invalid method call", zap.String("method", method))
		if c.strict {
			c.fail(twc.ErrBadParameter.Withf("invalid method %q", method))
		}
	}
	return c.start(ctx, &locationRequest{location: c.location, method: c.method}, fn)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// start snapshots the options and dispatches the request in the background
func (c *Client) start(ctx context.Context, req request, fn []CompletionFunc) (*Future, error) {
	if err := c.err; err != nil {
		c.err = nil
		return nil, err
	}

	opts := c.options
	future := newFuture()
	go func() {
		r := c.dispatch(ctx, future.id, req, opts)
		for _, fn := range fn {
			if fn != nil {
				fn(r.body, r.err)
			}
		}
		future.resolve(r)
	}()

	return future, nil
}
