package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for a session.
type options struct {
	logger    *slog.Logger
	clock     func() time.Time
	retention int
	baseDir   string
}

// Option defines a functional option for configuring a session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: nil,
		clock:  nil,
	}
}

// WithLogger sets the logger for the session and its persistence engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source used to stamp snapshots (useful for testing).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRetention overrides the configured number of archives to keep.
// Zero keeps the configured value.
func WithRetention(count int) Option {
	return func(o *options) {
		o.retention = count
	}
}

// WithBaseDir anchors relative storage paths at dir instead of the
// configured or executable directory.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}
