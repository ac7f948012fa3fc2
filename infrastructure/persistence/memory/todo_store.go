package memory

import (
	"context"
	"fmt"
	"sync"

	"todos-backend/application/ports"
	"todos-backend/domain/todo"
	apperrors "todos-backend/pkg/errors"
)

// TodoStore is an in-memory implementation of the TodoStore port. It mirrors
// the DynamoDB adapter's semantics: inserts overwrite, updates and deletes of
// missing keys are silent, and lookup by todoId scans across owners.
// Used by the dev server without AWS credentials and by tests.
type TodoStore struct {
	mu    sync.RWMutex
	items map[string]map[string]todo.Item // userId -> todoId -> item
}

// NewTodoStore creates a new in-memory todo store
func NewTodoStore() *TodoStore {
	return &TodoStore{
		items: make(map[string]map[string]todo.Item),
	}
}

var _ ports.TodoStore = (*TodoStore)(nil)

// Insert writes the full item, replacing any existing item with the same key.
func (s *TodoStore) Insert(_ context.Context, item todo.Item) (todo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items[item.UserID] == nil {
		s.items[item.UserID] = make(map[string]todo.Item)
	}
	s.items[item.UserID][item.TodoID] = item

	return item, nil
}

// ListByUser returns every item owned by the user, possibly empty.
func (s *TodoStore) ListByUser(_ context.Context, userID string) ([]todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]todo.Item, 0, len(s.items[userID]))
	for _, item := range s.items[userID] {
		items = append(items, item)
	}

	return items, nil
}

// GetByID scans all owners for the todoId, like the cross-owner index.
func (s *TodoStore) GetByID(_ context.Context, todoID string) (*todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, owned := range s.items {
		if item, ok := owned[todoID]; ok {
			return &item, nil
		}
	}

	return nil, apperrors.NewNotFoundError(fmt.Sprintf("todo %s", todoID))
}

// Update sets the mutable fields; a missing key is a silent no-op.
func (s *TodoStore) Update(_ context.Context, userID, todoID string, update todo.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[userID][todoID]
	if !ok {
		return nil
	}

	item.Name = update.Name
	item.DueDate = update.DueDate
	item.Done = update.Done
	s.items[userID][todoID] = item

	return nil
}

// SetAttachmentURL records the attachment location; a missing key is a silent no-op.
func (s *TodoStore) SetAttachmentURL(_ context.Context, userID, todoID, attachmentURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[userID][todoID]
	if !ok {
		return nil
	}

	item.AttachmentURL = attachmentURL
	s.items[userID][todoID] = item

	return nil
}

// Delete removes the item; deleting a missing key is not an error.
func (s *TodoStore) Delete(_ context.Context, userID, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items[userID], todoID)

	return nil
}
