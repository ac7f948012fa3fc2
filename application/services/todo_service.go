package services

import (
	"context"

	"todos-backend/application/ports"
	"todos-backend/domain/todo"
	"todos-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TodoService orchestrates the item lifecycle: create, list, update, delete
// and the attachment-upload workflow. It holds no state of its own; every
// operation is one store call, with store faults propagated unchanged to the
// handler boundary.
type TodoService struct {
	store   ports.TodoStore
	uploads ports.UploadURLProvider
	bucket  string
	logger  *zap.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(store ports.TodoStore, uploads ports.UploadURLProvider, bucket string, logger *zap.Logger) *TodoService {
	return &TodoService{
		store:   store,
		uploads: uploads,
		bucket:  bucket,
		logger:  logger,
	}
}

// Create mints a new item for the user, defaulting done to false and leaving
// the attachment URL empty, and returns the stored record.
func (s *TodoService) Create(ctx context.Context, userID, name, dueDate string) (todo.Item, error) {
	item := todo.Item{
		TodoID:        uuid.New().String(),
		UserID:        userID,
		CreatedAt:     utils.NowRFC3339(),
		Name:          name,
		DueDate:       dueDate,
		Done:          false,
		AttachmentURL: "",
	}

	s.logger.Info("Creating todo",
		zap.String("todoId", item.TodoID),
		zap.String("userId", userID),
	)

	return s.store.Insert(ctx, item)
}

// List returns every item owned by the user.
func (s *TodoService) List(ctx context.Context, userID string) ([]todo.Item, error) {
	return s.store.ListByUser(ctx, userID)
}

// Update applies the three mutable fields to the user's item. Ownership is
// enforced purely by key scoping; updating a missing or not-owned item is
// indistinguishable from success.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, update todo.Update) error {
	s.logger.Info("Updating todo",
		zap.String("todoId", todoID),
		zap.String("userId", userID),
	)

	return s.store.Update(ctx, userID, todoID, update)
}

// Delete removes the user's item. No existence check is performed; deleting
// an already-deleted item succeeds.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	s.logger.Info("Deleting todo",
		zap.String("todoId", todoID),
		zap.String("userId", userID),
	)

	return s.store.Delete(ctx, userID, todoID)
}

// RequestAttachmentUpload records the item's future public-read attachment
// location and returns a time-limited upload URL for the caller to PUT the
// file to. The two URLs are distinct endpoints.
//
// The lookup is by todoId alone and does not check the caller's identity, so
// any authenticated user can attach to any item they know the id of. Kept as
// current behavior; an ownership check here needs an API change.
func (s *TodoService) RequestAttachmentUpload(ctx context.Context, todoID string) (string, error) {
	item, err := s.store.GetByID(ctx, todoID)
	if err != nil {
		return "", err
	}

	publicURL := todo.PublicAttachmentURL(s.bucket, item.TodoID)
	if err := s.store.SetAttachmentURL(ctx, item.UserID, item.TodoID, publicURL); err != nil {
		return "", err
	}

	s.logger.Info("Attachment URL recorded",
		zap.String("todoId", item.TodoID),
		zap.String("userId", item.UserID),
		zap.String("attachmentUrl", publicURL),
	)

	return s.uploads.UploadURL(ctx, item.TodoID)
}
