package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeSuccess sends {"success":true, ...payload}.
func writeSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeFailure sends {"success":false,"error":message} with the status.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

// writeServiceError maps a service error onto the response envelope.
// notFound is the message used for ErrNotFound, which is entity-specific.
// Unexpected faults are logged in full server-side and surfaced opaquely.
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeFailure(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrAccessDenied):
		writeFailure(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeFailure(w, http.StatusConflict, "An account with that email already exists")
	default:
		slog.Error("operation failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
