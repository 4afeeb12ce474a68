package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	baseDir    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daynotes",
	Short: "A day-by-day calendar notebook with atomic saves and rotating history",
	Long: `daynotes attaches a free-text note to each day of a fixed calendar range.
Every confirmed edit is written atomically to saves/ and archived under
saves/history, where only the newest snapshots are kept.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setLogger(cmd, slog.LevelInfo)
	},
}

// setLogger installs the default logger on stderr. --verbose always wins.
func setLogger(cmd *cobra.Command, level slog.Level) {
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	slog.SetDefault(logger)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "Base directory holding saves/ (default: executable directory)")
}
