package fs

import (
	"os"
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path           string     `json:"path"`
	Format         string     `json:"format"`
	FileMode       string     `json:"file_mode"`
	ReadOnly       bool       `json:"read_only"`
	Exists         bool       `json:"exists"`
	SizeBytes      int64      `json:"size_bytes"`
	ActiveWatchers int        `json:"active_watchers"`
	LastWatchEvent *time.Time `json:"last_watch_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Path:           s.Path,
		Format:         s.codec.Name(),
		FileMode:       s.config.FileMode.String(),
		ReadOnly:       s.config.ReadOnly,
		ActiveWatchers: s.watchers,
		LastWatchEvent: s.lastWatchTime,
	}
	s.mu.RUnlock()

	if info, err := os.Stat(s.Path); err == nil {
		state.Exists = true
		state.SizeBytes = info.Size()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "file-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) watcherStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers++
}

func (s *Store) watcherStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers--
}

func (s *Store) recordWatchEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWatchTime = &now
}
