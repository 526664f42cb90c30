package weather

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Transport performs a GET request for an absolute URL and returns the status
// code and body. Errors are transport level: the body is not interpreted.
type Transport interface {
	Get(ctx context.Context, url string) (int, []byte, error)
}

// HTTPTransport is the default transport, backed by go-client
type HTTPTransport struct {
	*client.Client
}

// capture records the final response of a request before go-client checks
// the status code, so error responses keep their body
type capture struct {
	sync.Mutex
	status int
	body   []byte
	ok     bool
}

// captureTransport reads the response body into a capture
type captureTransport struct {
	http.RoundTripper
	*capture
}

// discard is the unmarshaler for successful responses, the body is already
// in the capture
type discard struct{}

var _ Transport = (*HTTPTransport)(nil)
var _ client.Unmarshaler = discard{}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTransport returns a go-client transport. The endpoint is the default
// for the underlying client; every request sets its own absolute URL.
func NewTransport(endpoint string, opts ...client.ClientOpt) (*HTTPTransport, error) {
	opts = append(opts, client.OptEndpoint(endpoint))
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &HTTPTransport{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get the URL and return the status and body of whatever response the server
// sent, including non-2xx responses. An error is returned only when no
// response was received.
func (t *HTTPTransport) Get(ctx context.Context, url string) (int, []byte, error) {
	rec := new(capture)
	err := t.DoWithContext(ctx, nil, discard{},
		client.OptReqEndpoint(url),
		client.OptReqTransport(func(next http.RoundTripper) http.RoundTripper {
			return &captureTransport{next, rec}
		}),
	)
	if status, body, ok := rec.response(); ok {
		return status, body, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, nil, err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.RoundTripper.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Redirects are followed by go-client, only the last hop is recorded
	if resp.StatusCode >= 300 && resp.StatusCode < 400 && resp.Header.Get("Location") != "" {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.Lock()
	defer t.Unlock()
	t.status, t.body, t.ok = resp.StatusCode, body, true
	return resp, nil
}

func (c *capture) response() (int, []byte, bool) {
	c.Lock()
	defer c.Unlock()
	return c.status, c.body, c.ok
}

func (discard) Unmarshal(http.Header, io.Reader) error {
	return nil
}
