package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Notes are created once and never updated, so there is no update or delete.
type Repository interface {
	// Save writes content as a new note and returns it. It never overwrites
	// an existing note.
	Save(ctx context.Context, content string) (Note, error)

	// Get retrieves a note by its ID (file name).
	Get(ctx context.Context, id string) (Note, error)

	// Latest returns the note with the greatest encoded timestamp.
	// It returns ErrNotFound when no note exists.
	Latest(ctx context.Context) (Note, error)

	// List returns all notes, newest first.
	List(ctx context.Context) ([]Note, error)

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}
