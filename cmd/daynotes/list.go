package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every day that has a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		days := sess.Store().Days()

		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sess.Notes())
		}

		if len(days) == 0 {
			fmt.Fprintln(out, "No notes found.")
			return nil
		}
		for _, day := range days {
			note, _ := sess.Note(day)
			fmt.Fprintf(out, "%s  %s\n", day, summarize(note))
		}
		return nil
	},
}

// summarize returns the first line of a note, marking that more follows.
func summarize(note string) string {
	first, rest, found := strings.Cut(note, "\n")
	if found && strings.TrimSpace(rest) != "" {
		return first + " …"
	}
	return first
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output notes as JSON")
}
