package ports

import (
	"context"

	"todos-backend/domain/todo"
)

// TodoStore is the persistence port for to-do items. Every method maps to a
// single backing-store call; there are no transactions spanning operations.
type TodoStore interface {
	// Insert writes a full item. Store-level primary-key overwrite semantics
	// apply: a second insert with the same (userId, todoId) silently replaces.
	Insert(ctx context.Context, item todo.Item) (todo.Item, error)

	// ListByUser returns every item owned by the user, possibly empty.
	ListByUser(ctx context.Context, userID string) ([]todo.Item, error)

	// GetByID looks up an item by todoId alone via the secondary index.
	// Returns a NOT_FOUND AppError when no item matches.
	GetByID(ctx context.Context, todoID string) (*todo.Item, error)

	// Update sets the three mutable fields on the item keyed by
	// (userId, todoId). Updating a missing key is not surfaced as an error.
	Update(ctx context.Context, userID, todoID string, update todo.Update) error

	// SetAttachmentURL records the public-read attachment location on the item.
	SetAttachmentURL(ctx context.Context, userID, todoID, attachmentURL string) error

	// Delete removes the item keyed by (userId, todoId). Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, userID, todoID string) error
}

// UploadURLProvider produces a time-limited upload URL for an item's
// attachment. The object store behind it is an external collaborator.
type UploadURLProvider interface {
	UploadURL(ctx context.Context, todoID string) (string, error)
}
