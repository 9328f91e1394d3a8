package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	editID      string
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title or content of a note",
	Long: `Change the title or content of a note.

Without an id the notes are listed and the id is asked for. Without --title
and --msg both fields are asked for, an empty answer keeps the current value.
An empty --title is ignored, an empty --msg clears the content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := newPrompter(cmd)

		input, err := idArgOrPrompt(cmd, p, args, editID)
		if err != nil {
			return err
		}
		id, err := resolveID(cmd, input)
		if err != nil {
			return err
		}

		note, found, err := service.GetNote(ctx, id)
		if err != nil {
			return fmt.Errorf("read note: %w", err)
		}
		if !found {
			return fmt.Errorf("note %s not found", input)
		}

		var patch core.Patch
		flags := cmd.Flags()
		if flags.Changed("title") || flags.Changed("msg") {
			if flags.Changed("title") {
				patch.Title = &editTitle
			}
			if flags.Changed("msg") {
				patch.Content = &editContent
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Editing %s, leave empty to keep the current value\n", note.ShortID())
			title, err := p.Ask("Title", note.Title)
			if err != nil {
				return err
			}
			content, err := p.Ask("Content", note.Content)
			if err != nil {
				return err
			}
			patch = core.Patch{Title: &title, Content: &content}
		}

		found, err = service.EditNote(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("edit note: %w", err)
		}
		if !found {
			return fmt.Errorf("note %s not found", input)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Note updated.")
		return nil
	},
}

// idArgOrPrompt returns the id argument or --id, or lists the notes and asks for one.
func idArgOrPrompt(cmd *cobra.Command, p *prompter, args []string, flagID string) (string, error) {
	switch {
	case len(args) == 1 && flagID != "" && args[0] != flagID:
		return "", fmt.Errorf("conflicting ids %q and --id %q", args[0], flagID)
	case len(args) == 1:
		return args[0], nil
	case flagID != "":
		return flagID, nil
	}

	notes, err := service.ListNotes(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return "", errors.New("there are no notes")
	}

	renderNotes(cmd.OutOrStdout(), notes)
	return p.Ask("ID", "")
}

func init() {
	editCmd.Flags().StringVar(&editID, "id", "", "Note id or unique id prefix")
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "msg", "m", "", "New content")
	rootCmd.AddCommand(editCmd)
}
