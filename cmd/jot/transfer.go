package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/platform"
)

var importPattern string

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Add Markdown files as notes",
	Long: `Add every Markdown file under <dir> matching --pattern as a note.
YAML frontmatter may carry id, title and created_at. Files without it take
their title from the file name. Notes whose id is already stored are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := jot.Import(cmd.Context(), service, args[0], importPattern)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, skipped := range result.Skipped {
			fmt.Fprintf(out, "skipped %s (already stored)\n", skipped)
		}
		fmt.Fprintf(out, "Imported %d note(s).\n", len(result.Imported))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every note to a directory as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := jot.Export(cmd.Context(), service, args[0])
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s.\n", len(written), args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importPattern, "pattern", "p", platform.DefaultImportPattern, "Glob of files to import, relative to <dir>")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
