// Package config holds the compiled-in calendar configuration and the
// optional YAML file that overrides it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/daynotes/pkg/core"
)

// Config holds all daynotes configuration.
type Config struct {
	// BaseDir anchors relative storage paths. Empty means the executable's directory.
	BaseDir   string          `yaml:"base_dir"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Storage   StorageConfig   `yaml:"storage"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type CalendarConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type StorageConfig struct {
	Dir            string `yaml:"dir"`
	LatestFile     string `yaml:"latest_file"`
	HistoryDir     string `yaml:"history_dir"`
	ArchivePrefix  string `yaml:"archive_prefix"`
	ArchivePattern string `yaml:"archive_pattern"`
}

type RetentionConfig struct {
	Count int `yaml:"count"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the calendar range and retention settings.
func (c *Config) Validate() error {
	if _, err := c.Range(); err != nil {
		return err
	}
	if c.Retention.Count < 1 {
		return fmt.Errorf("retention count must be at least 1, got %d", c.Retention.Count)
	}
	if c.Storage.LatestFile == "" || c.Storage.HistoryDir == "" {
		return fmt.Errorf("storage latest_file and history_dir are required")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses logging.level. An empty level means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Logging.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging level: %w", err)
	}
	return level, nil
}

// Range parses the configured calendar range.
func (c *Config) Range() (core.Range, error) {
	start, err := core.ParseDay(c.Calendar.Start)
	if err != nil {
		return core.Range{}, fmt.Errorf("calendar start: %w", err)
	}
	end, err := core.ParseDay(c.Calendar.End)
	if err != nil {
		return core.Range{}, fmt.Errorf("calendar end: %w", err)
	}
	return core.NewRange(start, end)
}

// ResolveBaseDir returns BaseDir, falling back to the directory holding the
// running executable.
func (c *Config) ResolveBaseDir() (string, error) {
	if c.BaseDir != "" {
		return c.BaseDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// LatestPath returns the absolute-or-base-relative location of the latest file.
func (c *Config) LatestPath(base string) string {
	return c.resolve(base, filepath.Join(c.Storage.Dir, c.Storage.LatestFile))
}

// HistoryPath returns the location of the archive directory.
func (c *Config) HistoryPath(base string) string {
	return c.resolve(base, filepath.Join(c.Storage.Dir, c.Storage.HistoryDir))
}

func (c *Config) resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
