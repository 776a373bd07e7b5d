package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/handler/dto"
	"github.com/taskvault/taskvault/internal/service"
)

// TodoHandler handles HTTP requests for todo operations. Every operation is
// scoped to the authenticated caller's user id; a todo owned by someone else
// is reported as not found.
type TodoHandler struct {
	svc    *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /todos.
// Invalid pagination values silently fall back to the defaults.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	query := r.URL.Query()

	pageNumber := service.DefaultPageNumber
	if p := query.Get("pageNumber"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			pageNumber = parsed
		}
	}

	pageSize := service.DefaultPageSize
	if s := query.Get("pageSize"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			pageSize = parsed
		}
	}

	page, err := h.svc.List(r.Context(), ownerID, pageNumber, pageSize)
	if err != nil {
		h.logger.Error("todo list failed", "error", err, "owner_id", ownerID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListTodosResponse(page.Todos, page.TotalPages))
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Get(r.Context(), ownerID, todoID)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeMessage(w, http.StatusNotFound, "Todo not found.")
			return
		}
		h.logger.Error("todo get failed", "error", err, "owner_id", ownerID, "todo_id", todoID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	var req dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	todo, err := h.svc.Create(r.Context(), ownerID, req.Task, req.IsCompleted)
	if err != nil {
		if errors.Is(err, service.ErrMissingTask) {
			writeMessage(w, http.StatusBadRequest, "Task text is required.")
			return
		}
		h.logger.Error("todo create failed", "error", err, "owner_id", ownerID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	h.logger.Info("todo_created", "todo_id", todo.ID, "owner_id", ownerID)
	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// Update handles PUT /todos/{id}.
// Zero affected rows is a not-found outcome, not a fault.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	affected, err := h.svc.UpdateTask(r.Context(), ownerID, todoID, req.Task)
	if err != nil {
		if errors.Is(err, service.ErrMissingTask) {
			writeMessage(w, http.StatusBadRequest, "Task text is required.")
			return
		}
		h.logger.Error("todo update failed", "error", err, "owner_id", ownerID, "todo_id", todoID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if affected == 0 {
		h.logger.Warn("no task was updated", "todo_id", todoID, "owner_id", ownerID)
		writeMessage(w, http.StatusNotFound, "Task not found or no changes made.")
		return
	}

	writeJSON(w, http.StatusOK, dto.UpdateTodoResponse{
		Message:      "Task updated successfully.",
		AffectedRows: affected,
	})
}

// Complete handles PUT /todos/{id}/complete.
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}

	affected, err := h.svc.Complete(r.Context(), ownerID, todoID)
	if err != nil {
		h.logger.Error("todo complete failed", "error", err, "owner_id", ownerID, "todo_id", todoID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if affected == 0 {
		h.logger.Warn("todo was not marked as complete", "todo_id", todoID, "owner_id", ownerID)
		writeMessage(w, http.StatusNotFound, "Todo not found or already completed.")
		return
	}

	h.logger.Info("todo_completed", "todo_id", todoID, "owner_id", ownerID)
	writeJSON(w, http.StatusOK, dto.CompleteTodoResponse{
		Message:      "Todo marked as complete successfully.",
		RowsAffected: affected,
	})
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}

	affected, err := h.svc.Delete(r.Context(), ownerID, todoID)
	if err != nil {
		h.logger.Error("todo delete failed", "error", err, "owner_id", ownerID, "todo_id", todoID)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if affected == 0 {
		h.logger.Warn("todo not found for deletion", "todo_id", todoID, "owner_id", ownerID)
		writeMessage(w, http.StatusNotFound, "Todo not found.")
		return
	}

	h.logger.Info("todo_deleted", "todo_id", todoID, "owner_id", ownerID)
	writeJSON(w, http.StatusOK, dto.DeleteTodoResponse{
		Message:      "Todo deleted successfully.",
		RowsAffected: affected,
	})
}

// todoID parses the {id} URL parameter, writing a 400 on failure.
func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid todo id.")
		return 0, false
	}
	return id, true
}
