package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Service handles the business logic for notes.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// CreateNote builds a note with a fresh id and persists it.
func (s *Service) CreateNote(ctx context.Context, title, content string) (Note, error) {
	n := NewNote(title, content)
	if err := s.repo.Add(ctx, n); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note created", "id", n.ID)
	return n, nil
}

// AddNote persists a caller-built note (e.g. one restored from an import).
func (s *Service) AddNote(ctx context.Context, n Note) error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if err := s.repo.Add(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("note added", "id", n.ID)
	return nil
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.ListAll(ctx)
}

// SearchNotes returns the notes matching query (see Repository.Filter).
func (s *Service) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	return s.repo.Filter(ctx, query)
}

// GetNote retrieves a note by id.
func (s *Service) GetNote(ctx context.Context, id string) (Note, bool, error) {
	if id == "" {
		return Note{}, false, ErrEmptyID
	}
	return s.repo.GetByID(ctx, id)
}

// EditNote applies p to the note with the given id.
func (s *Service) EditNote(ctx context.Context, id string, p Patch) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}
	found, err := s.repo.Edit(ctx, id, p)
	if err != nil {
		return false, err
	}
	s.logger.Debug("note edit", "id", id, "found", found)
	return found, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Debug("note delete", "id", id, "found", found)
	return found, nil
}

// ResolveID expands a unique id prefix to a full id.
// An exact match always wins over prefix matches.
func (s *Service) ResolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrEmptyID
	}

	notes, err := s.repo.ListAll(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, n := range notes {
		if n.ID == prefix {
			return n.ID, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d notes", ErrAmbiguousID, prefix, len(matches))
	}
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// Repository exposes the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}
