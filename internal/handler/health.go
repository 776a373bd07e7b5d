package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ReadyFlagStore caches the derived readiness verdict for a short window.
type ReadyFlagStore interface {
	GetReadyFlag(ctx context.Context) (bool, error)
	SetReadyFlag(ctx context.Context, ready bool) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
	flags ReadyFlagStore
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for any dependency that is not initialized.
func NewHealthHandler(db, cache HealthChecker, flags ReadyFlagStore) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
		flags: flags,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running, with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It checks all dependencies and returns 200 only if all are healthy.
// A positive verdict is cached briefly so hot probe traffic does not hammer
// the database; negative verdicts are always re-checked.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.flags != nil {
		if ready, err := h.flags.GetReadyFlag(ctx); err == nil && ready {
			writeJSON(w, http.StatusOK, HealthResponse{
				Status: "ok",
				Checks: map[string]string{"cached": "ok"},
			})
			return
		}
	}

	checks := make(map[string]string)
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["postgres"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "not configured"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	if h.flags != nil && healthy {
		_ = h.flags.SetReadyFlag(ctx, true)
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}
