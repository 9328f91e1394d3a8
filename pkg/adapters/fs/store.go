package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultFilename is the backing file used when no path is configured.
const DefaultFilename = "notes.json"

// DefaultFileMode is the permission of a newly created backing file.
const DefaultFileMode os.FileMode = 0644

// Config holds the configuration for the file-backed store.
type Config struct {
	Path     string      // Backing file. Defaults to DefaultFilename.
	Format   string      // "json", "yaml" or "yml". Empty picks by extension.
	FileMode os.FileMode // Mode of a newly created file. Defaults to DefaultFileMode.
	ReadOnly bool        // Reject mutations and never create the file.

	// ErrorHandler receives runtime watcher failures (e.g. an unreadable
	// collection after an external edit). The store itself never logs.
	ErrorHandler  func(error)
	WatchDebounce time.Duration // Zero means 50ms.
}

// Store implements core.Repository on a single file holding the whole
// collection. It keeps nothing in memory between calls: every operation
// loads the collection, applies itself and, when mutating, writes the full
// collection back atomically.
type Store struct {
	Path   string
	codec  Codec
	config Config
	write  writeFunc

	mu            sync.RWMutex // guards watch bookkeeping only
	watchers      int
	lastWatchTime *time.Time
}

// NewStore creates a new file-backed store. No I/O happens until
// Initialize or the first operation.
func NewStore(config Config) (*Store, error) {
	if config.Path == "" {
		config.Path = DefaultFilename
	}
	if config.FileMode == 0 {
		config.FileMode = DefaultFileMode
	}
	if config.WatchDebounce <= 0 {
		config.WatchDebounce = 50 * time.Millisecond
	}

	codec, err := CodecFor(config.Path, config.Format)
	if err != nil {
		return nil, err
	}

	return &Store{
		Path:   config.Path,
		codec:  codec,
		config: config,
		write:  writeFileAtomic,
	}, nil
}

// Initialize creates the backing file with an empty collection if it does
// not exist yet. In read-only mode it only checks the location.
func (s *Store) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if s.config.ReadOnly {
			return nil
		}
		return s.save(nil)
	case err != nil:
		return fmt.Errorf("%w: stat %s: %w", core.ErrStorageUnavailable, s.Path, err)
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", core.ErrStorageUnavailable, s.Path)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", core.ErrStorageUnavailable, s.Path, err)
	}
	return f.Close()
}

// ListAll returns every note in storage order.
func (s *Store) ListAll(ctx context.Context) ([]core.Note, error) {
	return s.load(ctx)
}

// Filter returns the notes whose title or content contains query, ignoring case.
func (s *Store) Filter(ctx context.Context, query string) ([]core.Note, error) {
	notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// Add appends n and rewrites the collection. A note whose id is already
// stored is rejected with core.ErrDuplicateID.
func (s *Store) Add(ctx context.Context, n core.Note) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if n.ID == "" {
		return core.ErrEmptyID
	}

	notes, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(notes, n.ID) >= 0 {
		return fmt.Errorf("%w: %s", core.ErrDuplicateID, n.ID)
	}

	return s.save(append(notes, n))
}

// GetByID scans the collection for id.
func (s *Store) GetByID(ctx context.Context, id string) (core.Note, bool, error) {
	notes, err := s.load(ctx)
	if err != nil {
		return core.Note{}, false, err
	}
	if i := indexOf(notes, id); i >= 0 {
		return notes[i], true, nil
	}
	return core.Note{}, false, nil
}

// Edit updates the title and/or content of the note with the given id.
// Nothing is written when the id is absent.
func (s *Store) Edit(ctx context.Context, id string, p core.Patch) (bool, error) {
	if s.config.ReadOnly {
		return false, core.ErrReadOnly
	}

	notes, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(notes, id)
	if i < 0 {
		return false, nil
	}
	if p.Title != nil && *p.Title != "" {
		notes[i].Title = *p.Title
	}
	if p.Content != nil {
		notes[i].Content = *p.Content
	}

	if err := s.save(notes); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the note with the given id. Nothing is written when the id
// is absent.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if s.config.ReadOnly {
		return false, core.ErrReadOnly
	}

	notes, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(notes, id)
	if i < 0 {
		return false, nil
	}

	remaining := make([]core.Note, 0, len(notes)-1)
	remaining = append(remaining, notes[:i]...)
	remaining = append(remaining, notes[i+1:]...)

	if err := s.save(remaining); err != nil {
		return false, err
	}
	return true, nil
}

// load reads and decodes the whole collection. A missing file is
// (re)created empty, except in read-only mode where it reads as empty.
func (s *Store) load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		if s.config.ReadOnly {
			return nil, nil
		}
		return nil, s.save(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", core.ErrStorageUnavailable, s.Path, err)
	}

	return s.decode(data)
}

func (s *Store) decode(data []byte) ([]core.Note, error) {
	records, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrStorageCorrupt, s.Path, err)
	}

	notes := make([]core.Note, 0, len(records))
	for i, r := range records {
		n, err := core.NoteFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", core.ErrStorageCorrupt, s.Path, i, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// save encodes and atomically writes the whole collection.
func (s *Store) save(notes []core.Note) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	data, err := s.codec.Encode(notes)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", core.ErrStorageUnavailable, s.codec.Name(), err)
	}
	if err := s.write(s.Path, data, s.config.FileMode); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	return nil
}

func indexOf(notes []core.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

var _ core.Repository = (*Store)(nil)
