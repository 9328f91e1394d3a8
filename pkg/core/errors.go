package core

import "errors"

// Common errors.
var (
	// ErrMalformedRecord reports a record with missing or mistyped fields.
	ErrMalformedRecord = errors.New("malformed note record")
	// ErrStorageUnavailable reports an I/O failure on the backing location.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageCorrupt reports persisted data that is not a valid note collection.
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrDuplicateID is returned by Add when the id is already stored.
	ErrDuplicateID = errors.New("duplicate note id")
	ErrReadOnly    = errors.New("store is in read-only mode")
	ErrEmptyID     = errors.New("note ID cannot be empty")

	// ErrNotFound and ErrAmbiguousID are only returned by id prefix resolution.
	// Lookups by full id report absence as a boolean.
	ErrNotFound    = errors.New("note not found")
	ErrAmbiguousID = errors.New("ambiguous note ID prefix")
)
