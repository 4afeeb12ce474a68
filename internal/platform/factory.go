package platform

import (
	"log/slog"

	"github.com/aretw0/daynotes/internal/config"
	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

// New builds a Session from cfg. A nil cfg means the compiled-in defaults.
// The store starts empty; call Open to recover the last saved notes.
//
//	sess, err := platform.New(nil, platform.WithBaseDir("./data"))
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng, err := cfg.Range()
	if err != nil {
		return nil, err
	}

	base := o.baseDir
	if base == "" {
		base, err = cfg.ResolveBaseDir()
		if err != nil {
			return nil, err
		}
	}

	retention := cfg.Retention.Count
	if o.retention > 0 {
		retention = o.retention
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	engine, err := fs.NewEngine(fs.Config{
		LatestPath:     cfg.LatestPath(base),
		HistoryDir:     cfg.HistoryPath(base),
		RetentionCount: retention,
		ArchivePrefix:  cfg.Storage.ArchivePrefix,
		ArchivePattern: cfg.Storage.ArchivePattern,
		Range:          rng,
		Logger:         logger,
		Clock:          o.clock,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		store:  core.NewStore(),
		engine: engine,
		rng:    rng,
		logger: logger,
	}, nil
}
