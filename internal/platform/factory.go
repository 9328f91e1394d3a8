package platform

import (
	"github.com/aretw0/jot/pkg/core"
)

// New creates a ready-to-use note service backed by the store at path.
//
//	svc, err := platform.New("notes.json", platform.WithLogger(logger))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
