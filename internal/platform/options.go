package platform

import (
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for the jot service.
type options struct {
	repository    core.Repository
	logger        *slog.Logger
	format        string
	fileMode      os.FileMode
	readOnly      bool
	errorHandler  func(error)
	watchDebounce time.Duration
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service. The store itself never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the default file store is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithFormat forces the persisted format ("json", "yaml" or "yml")
// regardless of the file extension.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithFileMode sets the permissions of a newly created store file.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Add, Edit and Delete return core.ErrReadOnly.
// 2. A missing store file reads as an empty collection and is not created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithWatchErrorHandler registers a callback to handle errors occurring during
// the Watch loop (e.g. the file was corrupted by an external editor).
func WithWatchErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithWatchDebounce sets how long the file must stay quiet before a change
// is reported. Zero means the default (50ms).
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.watchDebounce = d
	}
}
