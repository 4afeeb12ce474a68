package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/aretw0/daynotes/pkg/adapters/fs"
)

var (
	exportFormat    string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current notes to standard output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serializer, err := fs.SerializerFor(exportFormat)
		if err != nil {
			return err
		}
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		data, err := serializer.Serialize(sess.Snapshot())
		if err != nil {
			return err
		}
		if exportClipboard {
			if err := clipboard.WriteAll(string(data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d notes to the clipboard.\n", sess.Store().Len())
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json | yaml")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the export to the system clipboard instead of printing it")
}
