package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit notes interactively from standard input",
	Long: `Read edits from standard input, one per line:

  2025-11-01 Remember the meeting   set the note for a day
  2025-11-01                        clear the day

Each line is saved as soon as it is read. A failed save is reported and
editing continues. The session is saved once more when input ends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			dayArg, text, _ := strings.Cut(line, " ")

			day, err := parseDayArg(dayArg)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			if err := sess.Edit(ctx, day, text); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			if _, ok := sess.Note(day); ok {
				fmt.Fprintf(out, "%s saved\n", day)
			} else {
				fmt.Fprintf(out, "%s cleared\n", day)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		return sess.Close(ctx)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
