package core

import "context"

// Repository defines the contract for the remote note store.
// Implementations return errors untouched: no retries, no local fallback.
type Repository interface {
	// List returns one page of notes matching search. An empty search matches all.
	List(ctx context.Context, page int, search string) (NotePage, error)

	// Create stores a new note and returns it as the server saw it.
	Create(ctx context.Context, params CreateNoteParams) (Note, error)

	// Delete removes a note and returns the removed record.
	Delete(ctx context.Context, id string) (Note, error)
}
