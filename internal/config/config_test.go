package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daynotes/pkg/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "2025-09-01", cfg.Calendar.Start)
	assert.Equal(t, "2025-12-01", cfg.Calendar.End)
	assert.Equal(t, "saves", cfg.Storage.Dir)
	assert.Equal(t, "calendar_notes.json", cfg.Storage.LatestFile)
	assert.Equal(t, "history", cfg.Storage.HistoryDir)
	assert.Equal(t, "notes_", cfg.Storage.ArchivePrefix)
	assert.Empty(t, cfg.Storage.ArchivePattern)
	assert.Equal(t, 60, cfg.Retention.Count)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())

	r, err := cfg.Range()
	require.NoError(t, err)
	assert.Equal(t, core.MustParseDay("2025-09-01"), r.Start)
	assert.Equal(t, core.MustParseDay("2025-12-01"), r.End)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	base := filepath.Join(string(filepath.Separator), "opt", "daynotes")

	assert.Equal(t, filepath.Join(base, "saves", "calendar_notes.json"), cfg.LatestPath(base))
	assert.Equal(t, filepath.Join(base, "saves", "history"), cfg.HistoryPath(base))

	abs := filepath.Join(string(filepath.Separator), "var", "lib", "daynotes")
	cfg.Storage.Dir = abs
	assert.Equal(t, filepath.Join(abs, "history"), cfg.HistoryPath(base))
}

func TestResolveBaseDir(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = "/data"
	base, err := cfg.ResolveBaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/data", base)

	cfg.BaseDir = ""
	base, err = cfg.ResolveBaseDir()
	require.NoError(t, err)
	assert.NotEmpty(t, base)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "daynotes.yaml")

	yamlContent := `
calendar:
  start: "2026-01-01"
  end: "2026-03-31"
retention:
  count: 10
logging:
  level: "debug"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", cfg.Calendar.Start)
	assert.Equal(t, "2026-03-31", cfg.Calendar.End)
	assert.Equal(t, 10, cfg.Retention.Count)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, "saves", cfg.Storage.Dir)
	assert.Equal(t, "calendar_notes.json", cfg.Storage.LatestFile)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "daynotes.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"reversed range": "calendar:\n  start: \"2025-12-01\"\n  end: \"2025-09-01\"\n",
		"bad start":      "calendar:\n  start: \"September\"\n",
		"zero retention": "retention:\n  count: 0\n",
		"no latest file": "storage:\n  latest_file: \"\"\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "daynotes.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

			_, err := Load(cfgPath)
			assert.Error(t, err)
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	cfg.Logging.Level = "warn"
	level, err = cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}
