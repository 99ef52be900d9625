// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/math-master/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of
// relying on package-level globals, every handler method receives its
// dependencies through this struct.
type Handler struct {
	flow   *service.TestFlow
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(flow *service.TestFlow, logger *slog.Logger) *Handler {
	return &Handler{
		flow:   flow,
		logger: logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false; the caller should return.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleFlowError maps common service errors to HTTP responses. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleFlowError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrStillGenerating):
		respondError(w, http.StatusConflict, "test is still generating")
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
