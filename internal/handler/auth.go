package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/handler/dto"
	"github.com/taskvault/taskvault/internal/service"
)

// AuthHandler handles HTTP requests for registration, login and account
// removal.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Login handles POST /auth/login.
// Unknown usernames and wrong passwords produce the identical response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	h.logger.Info("user_logged_in", "username", req.Username)
	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			writeMessage(w, http.StatusBadRequest, "Username is already taken.")
		case errors.Is(err, service.ErrMissingCredentials):
			writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		default:
			h.logger.Error("registration failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		}
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID, "username", user.Username)
	w.WriteHeader(http.StatusCreated)
}

// Delete handles DELETE /auth/{id}.
// Any authenticated caller may delete any user id; the endpoint mirrors the
// original behavior and carries no ownership check.
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		h.logger.Error("user deletion failed", "error", err, "user_id", id)
		writeMessage(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	h.logger.Info("user_deleted", "user_id", id)
	writeMessage(w, http.StatusOK, "User deleted successfully.")
}
