package core

import "context"

// Patch describes an edit. A nil field is left untouched.
// An empty Title is treated as absent; an empty Content clears the content.
type Patch struct {
	Title   *string
	Content *string
}

// Repository defines the contract for storing and querying notes.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism.
type Repository interface {
	// ListAll returns every stored note in storage order.
	ListAll(ctx context.Context) ([]Note, error)

	// Filter returns, in storage order, the notes whose title or content
	// contains query, ignoring case. An empty query matches every note.
	Filter(ctx context.Context, query string) ([]Note, error)

	// Add appends a note to the collection.
	Add(ctx context.Context, n Note) error

	// GetByID returns the note with the given id. The boolean is false when
	// no note matches.
	GetByID(ctx context.Context, id string) (Note, bool, error)

	// Edit applies p to the note with the given id and reports whether it
	// was found. ID and CreatedAt never change.
	Edit(ctx context.Context, id string, p Patch) (bool, error)

	// Delete removes the note with the given id and reports whether it was found.
	Delete(ctx context.Context, id string) (bool, error)

	// Initialize ensures the underlying storage is ready (e.g. creates an empty collection).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report changes
// made to the collection by other processes or editors.
type Watchable interface {
	// Watch emits an Event per note created, modified or deleted until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
