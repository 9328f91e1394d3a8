package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// Watch reports changes to the backing file, whoever makes them, as one
// event per affected note until ctx is done. The returned channel is closed
// when watching stops.
//
// The parent directory is watched rather than the file itself because the
// atomic writer replaces the file by rename.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	baseline, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(s.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &watchWorker{
		store:    s,
		watcher:  watcher,
		snapshot: baseline,
		events:   make(chan core.Event, 16),
	}

	s.watcherStarted()
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher panic: %w", err))
	}))

	return w.events, nil
}

type watchWorker struct {
	store    *Store
	watcher  *fsnotify.Watcher
	snapshot []core.Note
	events   chan core.Event
}

// run is the main event loop. Bursts of filesystem events are collapsed
// into a single reconcile once the file has been quiet for the debounce window.
func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.store.watcherStopped()
	defer w.watcher.Close()

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if w.relevant(event) {
				debounce.Reset(w.store.config.WatchDebounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.store.reportError(fmt.Errorf("fsnotify: %w", err))

		case <-debounce.C:
			if !w.reconcile(ctx) {
				return nil
			}
		}
	}
}

func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.store.Path) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// reconcile re-reads the collection and emits the difference with the last
// snapshot. An unreadable or corrupt file is reported and skipped so the
// next successful read diffs against the last good state.
// It returns false once ctx is done.
func (w *watchWorker) reconcile(ctx context.Context) bool {
	var current []core.Note

	data, err := os.ReadFile(w.store.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Every note is gone until the store re-creates the file.
	case err != nil:
		w.store.reportError(fmt.Errorf("%w: read %s: %w", core.ErrStorageUnavailable, w.store.Path, err))
		return true
	default:
		current, err = w.store.decode(data)
		if err != nil {
			w.store.reportError(err)
			return true
		}
	}

	events := diffNotes(w.snapshot, current, time.Now().Unix())
	w.snapshot = current
	if len(events) == 0 {
		return true
	}

	w.store.recordWatchEvent()
	for _, e := range events {
		select {
		case w.events <- e:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// diffNotes lists creations and modifications in the order of next, then
// deletions in the order of prev.
func diffNotes(prev, next []core.Note, ts int64) []core.Event {
	before := make(map[string]core.Note, len(prev))
	for _, n := range prev {
		before[n.ID] = n
	}

	var events []core.Event
	seen := make(map[string]struct{}, len(next))
	for _, n := range next {
		seen[n.ID] = struct{}{}
		old, ok := before[n.ID]
		switch {
		case !ok:
			events = append(events, core.Event{Type: core.EventCreate, ID: n.ID, Timestamp: ts})
		case old.Title != n.Title || old.Content != n.Content || !old.CreatedAt.Equal(n.CreatedAt):
			events = append(events, core.Event{Type: core.EventModify, ID: n.ID, Timestamp: ts})
		}
	}
	for _, n := range prev {
		if _, ok := seen[n.ID]; !ok {
			events = append(events, core.Event{Type: core.EventDelete, ID: n.ID, Timestamp: ts})
		}
	}
	return events
}

func (s *Store) reportError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

var _ core.Watchable = (*Store)(nil)
