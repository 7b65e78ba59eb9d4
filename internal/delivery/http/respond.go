package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, details ...string) {
	respondJSON(w, status, ErrorResponse{Message: message, Errors: details})
}

// writeError maps a use case error to a response. notFound is the message
// used for domain.ErrNotFound.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrDuplicateUsername):
		respondError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, "Conflict")
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
