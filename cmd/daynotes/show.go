package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <YYYY-MM-DD>",
	Short: "Print the note for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		note, ok := sess.Note(day)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No note for %s.\n", day)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
