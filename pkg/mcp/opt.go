package mcp

import (
	// Packages
	twc "github.com/mutablelogic/go-twc"
	zap "go.uber.org/zap"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger logs tool calls. Standard output carries the protocol, so the
// logger should write elsewhere.
func WithLogger(v *zap.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return twc.ErrBadParameter.With("logger is required")
		}
		server.log = v
		return nil
	}
}
