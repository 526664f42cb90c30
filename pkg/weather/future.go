package weather

import (
	"context"
	"encoding/json"

	// Packages
	uuid "github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CompletionFunc receives the outcome of a dispatch. Body is nil when there
// is no parsed payload; for upstream errors both body and err are set.
type CompletionFunc func(body any, err error)

// Future is the awaitable outcome of a dispatch
type Future struct {
	id     string
	done   chan struct{}
	result result
}

// result is the single completion signal produced by a dispatch
type result struct {
	body any
	raw  []byte
	err  error
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newFuture() *Future {
	return &Future{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// resolve may only be called once
func (f *Future) resolve(r result) {
	f.result = r
	close(f.done)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ID returns a unique identifier for the dispatch
func (f *Future) ID() string {
	return f.id
}

// Done returns a channel which is closed when the dispatch completes
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the dispatch completes or the context is done, and
// returns the same body and error delivered to any completion callbacks.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.result.body, f.result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Raw blocks until the dispatch completes and returns the response body as
// received, or nil if no request was made
func (f *Future) Raw() []byte {
	<-f.done
	return f.result.raw
}

// Decode awaits the dispatch and decodes the response body into v. The
// dispatch error is returned when set, in which case v is left unchanged.
func (f *Future) Decode(ctx context.Context, v any) error {
	if _, err := f.Await(ctx); err != nil {
		return err
	}
	return json.Unmarshal(f.result.raw, v)
}
