package distfield

import "log/slog"

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Default CPU-only session
//	s := distfield.NewSession()
//
//	// GPU-backed session with a custom logger
//	s := distfield.NewSession(
//	    distfield.WithBackend(wgpu.New()),
//	    distfield.WithLogger(slog.Default()),
//	)
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	backend    Backend
	logger     *slog.Logger
	workers    int
	panX, panY float64
}

// WithBackend injects a GPU evaluation backend. The session calls Init once
// during creation; if Init fails the session logs the downgrade and stays on
// CPU for its whole lifetime.
func WithBackend(b Backend) SessionOption {
	return func(o *sessionOptions) {
		o.backend = b
	}
}

// WithLogger sets a session-specific logger. Sessions without one use the
// package logger (see SetLogger), which defaults to silent.
func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// WithWorkers caps the number of goroutines used for CPU evaluation.
// Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) SessionOption {
	return func(o *sessionOptions) {
		o.workers = n
	}
}

// WithPan sets the fixed pan offset applied to every coordinate before any
// distortion step. The offset participates in the cache signature.
func WithPan(x, y float64) SessionOption {
	return func(o *sessionOptions) {
		o.panX = x
		o.panY = y
	}
}
