package weather

import (
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	twc "github.com/mutablelogic/go-twc"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a client
type Opt func(*Client) error

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (c *Client) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithEndpoint sets the API endpoint, without the version path segment.
// The default is https://api.weather.com
func WithEndpoint(endpoint string) Opt {
	return func(c *Client) error {
		endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
		if endpoint == "" {
			return twc.ErrBadParameter.With("endpoint is required")
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithTransport replaces the HTTP transport used for dispatch
func WithTransport(transport Transport) Opt {
	return func(c *Client) error {
		if transport == nil {
			return twc.ErrBadParameter.With("transport is required")
		}
		c.transport = transport
		return nil
	}
}

// WithClientOpts passes options to the default go-client transport, for
// example client.OptTrace or client.OptTimeout. Ignored when a transport
// is set with WithTransport.
func WithClientOpts(opts ...client.ClientOpt) Opt {
	return func(c *Client) error {
		c.clientOpts = append(c.clientOpts, opts...)
		return nil
	}
}

// WithTracer sets the tracer used for dispatch spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(c *Client) error {
		if tracer == nil {
			return twc.ErrBadParameter.With("tracer is required")
		}
		c.tracer = tracer
		return nil
	}
}

// WithLogger sets a logger for diagnostics. The default logger discards
// everything.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Client) error {
		if logger == nil {
			return twc.ErrBadParameter.With("logger is required")
		}
		c.log = logger
		return nil
	}
}

// WithStrict turns values which are silently ignored by default (unknown unit
// codes, unknown methods, malformed language tags) into ErrBadParameter
// errors returned from the next terminal operation.
func WithStrict() Opt {
	return func(c *Client) error {
		c.strict = true
		return nil
	}
}

// WithQueryEscape escapes query values. By default values are inserted
// into the URL as given.
func WithQueryEscape() Opt {
	return func(c *Client) error {
		c.escape = true
		return nil
	}
}

// WithUnits sets the initial unit code
func WithUnits(code string) Opt {
	return func(c *Client) error {
		if !isUnits(code) {
			return twc.ErrBadParameter.Withf("invalid units %q", code)
		}
		c.options.Units = code
		return nil
	}
}

// WithLanguage sets the initial language
func WithLanguage(tag string) Opt {
	return func(c *Client) error {
		if tag = strings.TrimSpace(tag); tag == "" {
			return twc.ErrBadParameter.With("language is required")
		}
		c.options.Language = tag
		return nil
	}
}
