package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/daynotes/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes to the saved notes until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
		defer stop()
		return runWatch(ctx, cmd)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}

	events, err := sess.Watch(ctx)
	if err != nil {
		return err
	}

	source := lifecycle.NewSource(events, sess.Engine())
	if err := source.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", sess.Engine().Config().LatestPath)
	for e := range source.Events() {
		fmt.Fprintf(out, "%s %s\n", time.Now().Format("15:04:05"), e)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
