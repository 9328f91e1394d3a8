package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

var watchTypes []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the notes file by other processes",
	Long: `Watch the notes file and print one line per note created, modified or
deleted, until interrupted.

Example:
  jot watch --type create --type delete`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := parseEventTypes(watchTypes)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch notes: %w", err)
		}

		src := lifecycle.NewSource(events, types...)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Watching for changes, press Ctrl+C to stop.")
		for e := range src.Events() {
			fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.TimeOnly), e)
		}
		return nil
	},
}

func parseEventTypes(names []string) ([]core.EventType, error) {
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		t := core.EventType(strings.ToUpper(strings.TrimSpace(name)))
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q (want create, modify or delete)", name)
		}
	}
	return types, nil
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only report these changes: create, modify, delete")
	rootCmd.AddCommand(watchCmd)
}
