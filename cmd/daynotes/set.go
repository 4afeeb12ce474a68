package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD> <text...>",
	Short: "Write the note for a day and save",
	Long: `Write the note for a day and save it immediately.
Surrounding whitespace is trimmed; a blank note clears the day.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		text := strings.Join(args[1:], " ")
		if err := sess.Edit(commandContext(cmd), day, text); err != nil {
			return err
		}

		if _, ok := sess.Note(day); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Note for %s saved.\n", day)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Note for %s cleared.\n", day)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <YYYY-MM-DD>",
	Short: "Remove the note for a day and save",
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

		if err := sess.Clear(commandContext(cmd), day); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note for %s cleared.\n", day)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(clearCmd)
}
