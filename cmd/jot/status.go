package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the notes store as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var component introspection.Introspectable = service

		report := map[string]any{
			"component": service.ComponentType(),
			"state":     component.State(),
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
