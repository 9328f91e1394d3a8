package jot

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note entity.
type Note = core.Note

// Patch is a public alias for a partial note update.
type Patch = core.Patch

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithFormat forces the collection format ("json", "yaml" or "yml").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithFileMode sets the permissions of a newly created store file.
func WithFileMode(mode os.FileMode) Option {
	return platform.WithFileMode(mode)
}

// WithWatchErrorHandler receives errors raised while watching the store file.
func WithWatchErrorHandler(fn func(error)) Option {
	return platform.WithWatchErrorHandler(fn)
}

// WithWatchDebounce sets the quiet period before a file change is reported.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// --- Factory ---

// New creates a new note service backed by the file at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init opens the store at path, creating an empty collection if needed.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Transfer ---

// ImportResult reports the outcome of Import.
type ImportResult = platform.ImportResult

// Import adds the Markdown notes under root that match pattern.
func Import(ctx context.Context, svc *core.Service, root, pattern string) (ImportResult, error) {
	return platform.Import(ctx, svc, root, pattern)
}

// Export writes every note to dir as a Markdown file.
func Export(ctx context.Context, svc *core.Service, dir string) ([]string, error) {
	return platform.Export(ctx, svc, dir)
}
