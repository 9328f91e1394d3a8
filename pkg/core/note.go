package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the text form of Note.CreatedAt in persisted records.
// It sorts lexically for UTC timestamps and carries an explicit offset.
const TimeLayout = time.RFC3339Nano

// Record field names.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldCreatedAt = "created_at"
)

// Note is the central entity of the domain.
// Its ID and CreatedAt are fixed at construction; Title and Content change
// only through Repository.Edit.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}

// Record is the field-complete structured form of a Note, suitable for
// storage or transmission. Every value is a string.
type Record map[string]any

// NoteOption customizes NewNote.
type NoteOption func(*Note)

// WithID uses id instead of generating one. Empty ids are ignored.
func WithID(id string) NoteOption {
	return func(n *Note) {
		if id != "" {
			n.ID = id
		}
	}
}

// WithCreatedAt uses t instead of the current time. Zero times are ignored.
func WithCreatedAt(t time.Time) NoteOption {
	return func(n *Note) {
		if !t.IsZero() {
			n.CreatedAt = t
		}
	}
}

// NewNote builds a note with a fresh random identifier and the current time,
// unless overridden by opts.
func NewNote(title, content string, opts ...NoteOption) Note {
	n := Note{
		Title:   title,
		Content: content,
	}
	for _, opt := range opts {
		opt(&n)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return n
}

// ShortID returns the leading eight characters of the id, used for display.
func (n Note) ShortID() string {
	if len(n.ID) <= 8 {
		return n.ID
	}
	return n.ID[:8]
}

// Record serializes the note. NoteFromRecord is its exact inverse.
func (n Note) Record() Record {
	return Record{
		FieldID:        n.ID,
		FieldTitle:     n.Title,
		FieldContent:   n.Content,
		FieldCreatedAt: n.CreatedAt.Format(TimeLayout),
	}
}

// NoteFromRecord reconstructs a Note from a Record.
// It fails with ErrMalformedRecord when a field is missing or is not a string,
// or when created_at is not a valid timestamp.
func NoteFromRecord(r Record) (Note, error) {
	id, err := stringField(r, FieldID)
	if err != nil {
		return Note{}, err
	}
	title, err := stringField(r, FieldTitle)
	if err != nil {
		return Note{}, err
	}
	content, err := stringField(r, FieldContent)
	if err != nil {
		return Note{}, err
	}
	created, err := stringField(r, FieldCreatedAt)
	if err != nil {
		return Note{}, err
	}

	createdAt, err := time.Parse(TimeLayout, created)
	if err != nil {
		return Note{}, fmt.Errorf("%w: field %q: %v", ErrMalformedRecord, FieldCreatedAt, err)
	}

	return Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}, nil
}

func stringField(r Record, key string) (string, error) {
	raw, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrMalformedRecord, key, raw)
	}
	return s, nil
}
