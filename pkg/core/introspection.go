package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string `json:"repository_type"`
	Watchable      bool   `json:"watchable"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	state := ServiceState{RepositoryType: "unknown"}
	if s.repo == nil {
		return state
	}

	state.RepositoryType = "repository"
	// Try to get component type if repository implements introspection.Component
	if comp, ok := s.repo.(introspection.Component); ok {
		state.RepositoryType = comp.ComponentType()
	}
	if in, ok := s.repo.(introspection.Introspectable); ok {
		state.Repository = in.State()
	}
	_, state.Watchable = s.repo.(Watchable)

	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
