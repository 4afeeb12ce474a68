package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		archives, err := sess.History(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(archives)
		}

		if len(archives) == 0 {
			fmt.Fprintln(out, "No archived snapshots.")
			return nil
		}
		for _, a := range archives {
			fmt.Fprintf(out, "%s  %s\n", a.Name, a.ModTime.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Make an archived snapshot the current notes",
	Long: `Replace the current notes with an archived snapshot from saves/history.
The restored state is saved as a new snapshot, so the previous state stays
in the history until it is pruned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		if err := sess.Restore(commandContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s (%d notes).\n", args[0], sess.Store().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(restoreCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output archives as JSON")
}
