package main

import (
	"fmt"

	"github.com/aretw0/daynotes"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daynotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "daynotes version %s\n", daynotes.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
