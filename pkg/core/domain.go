package core

import "fmt"

// EventType represents the type of change in the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a single note.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
