package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
)

// Init opens the store at path and makes sure its backing file exists.
// An empty path selects fs.DefaultFilename in the working directory.
//
// It returns the configured core.Repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Build the file store
	store, err := fs.NewStore(fs.Config{
		Path:          path,
		Format:        o.format,
		FileMode:      o.fileMode,
		ReadOnly:      o.readOnly,
		ErrorHandler:  o.errorHandler,
		WatchDebounce: o.watchDebounce,
	})
	if err != nil {
		return nil, fmt.Errorf("configure store: %w", err)
	}

	if o.logger != nil {
		o.logger.Debug("opening note store", "path", store.Path, "read_only", o.readOnly)
	}

	// 3. Run Initialization
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}
