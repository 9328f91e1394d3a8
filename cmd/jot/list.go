package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	listQuery string
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, optionally filtered by a keyword",
	Long: `List notes in storage order. With --query only the notes whose title or
content contains the keyword (ignoring case) are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			notes []core.Note
			err   error
		)
		if cmd.Flags().Changed("query") {
			notes, err = service.SearchNotes(cmd.Context(), listQuery)
		} else {
			notes, err = service.ListNotes(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			records := make([]core.Record, 0, len(notes))
			for _, n := range notes {
				records = append(records, n.Record())
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(records)
		}

		if cmd.Flags().Changed("query") {
			fmt.Fprintf(out, "Results for %q:\n", listQuery)
		}
		renderNotes(out, notes)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Only notes containing this keyword")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
