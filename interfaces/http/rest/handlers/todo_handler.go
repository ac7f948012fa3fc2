package handlers

import (
	"net/http"

	"todos-backend/application/services"
	"todos-backend/domain/todo"
	"todos-backend/pkg/auth"
	"todos-backend/pkg/common"
	apperrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	service *services.TodoService
	logger  *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(service *services.TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		service: service,
		logger:  logger,
	}
}

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	DueDate string `json:"dueDate,omitempty" validate:"omitempty,max=64"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// All three fields are required; they are always written together.
type UpdateTodoRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	DueDate string `json:"dueDate" validate:"required,max=64"`
	Done    *bool  `json:"done" validate:"required"`
}

// ListTodosResponse wraps the items owned by the caller
type ListTodosResponse struct {
	Items []todo.Item `json:"items"`
}

// AttachmentUploadResponse carries the presigned upload URL
type AttachmentUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	items, err := h.service.List(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("Failed to list todos",
			zap.String("userId", userCtx.UserID),
			zap.Error(err),
		)
		h.respondServiceError(w, err, "Failed to list todos")
		return
	}

	common.RespondJSON(w, http.StatusOK, ListTodosResponse{Items: items})
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	item, err := h.service.Create(r.Context(), userCtx.UserID, req.Name, req.DueDate)
	if err != nil {
		h.logger.Error("Failed to create todo",
			zap.String("userId", userCtx.UserID),
			zap.Error(err),
		)
		h.respondServiceError(w, err, "Failed to create todo")
		return
	}

	common.RespondJSON(w, http.StatusCreated, item)
}

// UpdateTodo handles PATCH /todos/{todoId}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoId")
	if todoID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Todo ID is required")
		return
	}

	var req UpdateTodoRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	update := todo.Update{
		Name:    req.Name,
		DueDate: req.DueDate,
		Done:    *req.Done,
	}

	if err := h.service.Update(r.Context(), userCtx.UserID, todoID, update); err != nil {
		h.logger.Error("Failed to update todo",
			zap.String("todoId", todoID),
			zap.String("userId", userCtx.UserID),
			zap.Error(err),
		)
		h.respondServiceError(w, err, "Failed to update todo")
		return
	}

	common.RespondJSON(w, http.StatusOK, struct{}{})
}

// DeleteTodo handles DELETE /todos/{todoId}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoId")
	if todoID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Todo ID is required")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	if err := h.service.Delete(r.Context(), userCtx.UserID, todoID); err != nil {
		h.logger.Error("Failed to delete todo",
			zap.String("todoId", todoID),
			zap.String("userId", userCtx.UserID),
			zap.Error(err),
		)
		h.respondServiceError(w, err, "Failed to delete todo")
		return
	}

	common.RespondJSON(w, http.StatusOK, struct{}{})
}

// RequestAttachmentUpload handles POST /todos/{todoId}/attachment
func (h *TodoHandler) RequestAttachmentUpload(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoId")
	if todoID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Todo ID is required")
		return
	}

	// The caller must be authenticated, but the lookup below is by todoId
	// alone and is not scoped to the caller's identity.
	if _, err := auth.GetUserFromContext(r.Context()); err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	uploadURL, err := h.service.RequestAttachmentUpload(r.Context(), todoID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "Todo not found")
			return
		}
		h.logger.Error("Failed to create attachment upload URL",
			zap.String("todoId", todoID),
			zap.Error(err),
		)
		h.respondServiceError(w, err, "Failed to create upload URL")
		return
	}

	common.RespondJSON(w, http.StatusOK, AttachmentUploadResponse{UploadURL: uploadURL})
}

// respondServiceError maps a service-layer error to an HTTP response
func (h *TodoHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		common.RespondError(w, apperrors.HTTPStatus(err), string(appErr.Type), appErr.Message)
		return
	}
	common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
