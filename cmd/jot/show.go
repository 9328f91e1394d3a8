package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note in full",
	Long:  `Print a note in full. Any unique prefix of the id is accepted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveID(cmd, args[0])
		if err != nil {
			return err
		}

		note, found, err := service.GetNote(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("read note: %w", err)
		}
		if !found {
			return fmt.Errorf("note %s not found", args[0])
		}

		renderNote(cmd.OutOrStdout(), note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
