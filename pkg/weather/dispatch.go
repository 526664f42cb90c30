package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	twc "github.com/mutablelogic/go-twc"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// url returns the absolute URL for a request
func (c *Client) url(req request, opts Options) (string, error) {
	path, err := req.path(opts, c.escape)
	if err != nil {
		return "", err
	}
	return c.endpoint + "/" + req.version() + "/" + path, nil
}

// dispatch builds the URL, performs the request and classifies the response
func (c *Client) dispatch(ctx context.Context, id string, req request, opts Options) (r result) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "Dispatch",
		attribute.String("id", id),
		attribute.String("version", req.version()),
	)
	defer func() { endSpan(r.err) }()

	log := c.log.With(zap.String("id", id), zap.String("version", req.version()))

	// The credential check comes before anything else
	if opts.ApiKey == "" {
		r.err = twc.ErrMissingCredential
		return
	}

	url, err := c.url(req, opts)
	if err != nil {
		r.err = err
		return
	}

	// Request the URL
	status, body, err := c.transport.Get(ctx, url)
	if err != nil {
		log.Debug("transport error", zap.Int("status", status), zap.Error(err))
		r.err = transportError(err)
		return
	}
	r.raw = body

	// Parse the body, regardless of status
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		log.Warn("invalid response body", zap.Int("status", status), zap.ByteString("body", body))
		r.err = &twc.ParseError{Body: body, Err: err}
		return
	}
	r.body = v

	// Check for an upstream error payload
	if object, ok := v.(map[string]any); ok {
		if success, exists := object["success"]; exists && isFalsy(success) {
			r.err = &twc.UpstreamError{Errors: object["errors"]}
			log.Debug("upstream error", zap.Int("status", status), zap.Error(r.err))
			return
		}
	}

	log.Debug("success", zap.Int("status", status), zap.Int("bytes", len(body)))
	return
}

// transportError marks err as a transport error
func transportError(err error) error {
	if errors.Is(err, twc.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", twc.ErrTransport, err)
}

// isFalsy returns true for decoded JSON values which are null, false, zero
// or the empty string
func isFalsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}
