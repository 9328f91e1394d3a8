package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new note",
	Long: `Add a new note. A missing --title or --msg is asked for interactively.

Example:
  jot add --title "Groceries" --msg "milk, eggs"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)

		title := addTitle
		if !cmd.Flags().Changed("title") {
			var err error
			if title, err = p.Ask("Title", ""); err != nil {
				return err
			}
		}

		content := addContent
		if !cmd.Flags().Changed("msg") {
			var err error
			if content, err = p.Ask("Content", ""); err != nil {
				return err
			}
		}

		note, err := service.CreateNote(cmd.Context(), title, content)
		if err != nil {
			return fmt.Errorf("add note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note added (ID: %s)\n", note.ShortID())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "msg", "m", "", "Note content")
	rootCmd.AddCommand(addCmd)
}
