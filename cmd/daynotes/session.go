package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/daynotes"
)

// openSession builds a session from the global flags and loads the saved notes.
func openSession(cmd *cobra.Command) (*daynotes.Session, error) {
	cfg := daynotes.DefaultConfig()
	if configPath != "" {
		loaded, err := daynotes.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	setLogger(cmd, level)

	opts := []daynotes.Option{daynotes.WithLogger(slog.Default())}
	if baseDir != "" {
		opts = append(opts, daynotes.WithBaseDir(baseDir))
	}

	sess, err := daynotes.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize daynotes: %w", err)
	}
	sess.Open(commandContext(cmd))
	return sess, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseDayArg(arg string) (daynotes.Day, error) {
	day, err := daynotes.ParseDay(arg)
	if err != nil {
		return daynotes.Day{}, fmt.Errorf("%w (expected YYYY-MM-DD)", err)
	}
	return day, nil
}
