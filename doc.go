// Package jot is the Composition Root for the jot note keeper.
//
// It connects the core business logic (Domain Layer) with the file store
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// jot keeps a personal collection of notes in one human-readable file.
// There is no database and no cache: every operation reads the file, applies
// itself and, when it changes something, writes the whole collection back
// atomically. What is on disk is always the truth.
//
// Features:
//
//   - **Single File**: The collection is one JSON (default) or YAML document.
//   - **Atomic Writes**: A crash mid-write leaves the previous collection intact.
//   - **Stable Identity**: Notes get a UUID and a UTC creation time at birth.
//   - **Reactive**: `Service.Watch` reports notes created, modified or deleted by other processes.
//   - **Portable**: Import and export notes as Markdown with YAML frontmatter.
//
// Usage:
//
//	svc, err := jot.New("notes.json", jot.WithLogger(logger))
//
//	note, err := svc.CreateNote(ctx, "groceries", "milk, eggs")
//	found, err := svc.SearchNotes(ctx, "milk")
package jot
