package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteID  string
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete a note after confirmation. Without an id the notes are listed and
the id is asked for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)

		input, err := idArgOrPrompt(cmd, p, args, deleteID)
		if err != nil {
			return err
		}
		id, err := resolveID(cmd, input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !deleteYes {
			ok, err := p.Confirm(fmt.Sprintf("Delete note %.8s?", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Deletion cancelled.")
				return nil
			}
		}

		found, err := service.DeleteNote(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		if !found {
			return fmt.Errorf("note %s not found", input)
		}

		fmt.Fprintln(out, "Note deleted.")
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "Note id or unique id prefix")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}
