package main

import (
	"fmt"

	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of jot",
	// No store is needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jot version %s\n", jot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
