package daynotes

import (
	"log/slog"
	"time"

	"github.com/aretw0/daynotes/internal/config"
	"github.com/aretw0/daynotes/internal/platform"
	"github.com/aretw0/daynotes/pkg/core"
)

// Version of the daynotes application.
const Version = "0.4.0"

// --- Types ---

// Session owns the notes of one application run.
type Session = platform.Session

// Config is the calendar and storage configuration.
type Config = config.Config

// Day identifies a calendar date.
type Day = core.Day

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithRetention overrides the number of archives kept.
func WithRetention(count int) Option {
	return platform.WithRetention(count)
}

// WithBaseDir anchors the saves directory at dir.
func WithBaseDir(dir string) Option {
	return platform.WithBaseDir(dir)
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParseDay parses a YYYY-MM-DD day.
func ParseDay(s string) (Day, error) {
	return core.ParseDay(s)
}

// --- Factory ---

// New creates a Session. A nil cfg uses the compiled-in defaults.
func New(cfg *Config, opts ...Option) (*Session, error) {
	return platform.New(cfg, opts...)
}
