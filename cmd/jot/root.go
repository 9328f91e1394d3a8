package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/internal/logx"
	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
)

var (
	storeFile   string
	storeFormat string
	readOnly    bool
	verbose     bool
	pretty      bool

	// service is wired by PersistentPreRunE for every command that touches notes.
	service *core.Service
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A personal note keeper backed by a single file",
	Long: `jot keeps short text notes in one JSON or YAML file.
Every command reads the file, applies the change and writes it back atomically.

Without --file, jot looks for notes.json in the current directory and its
parents, and falls back to ./notes.json.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "Notes file (env JOT_FILE)")
	rootCmd.PersistentFlags().StringVar(&storeFormat, "format", "", "Force the file format: json, yaml (env JOT_FORMAT)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse any change to the notes file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Colored log output (env JOT_LOG_PRETTY)")
}

// setup merges environment and flags, installs the default logger and opens the store.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Store.File = storeFile
	}
	if flags.Changed("format") {
		cfg.Store.Format = storeFormat
	}
	if flags.Changed("pretty") {
		cfg.Log.Pretty = pretty
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logx.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	path := cfg.Store.File
	if path == "" {
		path = discoverStore(logger)
	}

	service, err = jot.New(path,
		jot.WithLogger(logger),
		jot.WithFormat(cfg.Store.Format),
		jot.WithReadOnly(readOnly),
		jot.WithWatchErrorHandler(func(err error) {
			logger.Error("watch failed", "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("open notes: %w", err)
	}
	return nil
}

func discoverStore(logger *slog.Logger) string {
	wd, err := os.Getwd()
	if err != nil {
		return fs.DefaultFilename
	}
	path, err := platform.FindStoreFile(wd, fs.DefaultFilename)
	if err != nil {
		logger.Debug("no notes file found upwards, using working directory", "dir", wd)
		return fs.DefaultFilename
	}
	logger.Debug("notes file discovered", "path", path)
	return path
}

// resolveID turns a user supplied id or id prefix into a stored note id.
func resolveID(cmd *cobra.Command, input string) (string, error) {
	return service.ResolveID(cmd.Context(), input)
}
