package config

// Compiled-in calendar settings.
const (
	DefaultStart          = "2025-09-01"
	DefaultEnd            = "2025-12-01"
	DefaultStorageDir     = "saves"
	DefaultLatestFile     = "calendar_notes.json"
	DefaultHistoryDir     = "history"
	DefaultArchivePrefix  = "notes_"
	DefaultRetentionCount = 60
)

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			Start: DefaultStart,
			End:   DefaultEnd,
		},
		Storage: StorageConfig{
			Dir:           DefaultStorageDir,
			LatestFile:    DefaultLatestFile,
			HistoryDir:    DefaultHistoryDir,
			ArchivePrefix: DefaultArchivePrefix,
		},
		Retention: RetentionConfig{
			Count: DefaultRetentionCount,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
