package http

import (
	"errors"
	"net/http"

	"github.com/ecoscan/ecoscan-api/internal/auth"
	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// Authenticator resolves the user behind a request
type Authenticator interface {
	CurrentUser(r *http.Request) (*domain.User, error)
}

// SessionManager starts and ends cookie sessions
type SessionManager interface {
	Start(w http.ResponseWriter, r *http.Request, userID uint) error
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// UserHandlerFunc is a handler that has already been given the caller
type UserHandlerFunc func(w http.ResponseWriter, r *http.Request, user *domain.User)

// requireUser rejects unauthenticated requests with 401 and passes the
// authenticated user to next
func (h *Handler) requireUser(next UserHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.auth.CurrentUser(r)
		if err != nil {
			if !errors.Is(err, auth.ErrNotAuthenticated) {
				logger.Error(r.Context()).Err(err).Msg("Failed to authenticate request")
			}
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r, user)
	}
}

// optionalUser returns the caller, or nil for anonymous requests
func (h *Handler) optionalUser(r *http.Request) *domain.User {
	user, err := h.auth.CurrentUser(r)
	if err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			logger.Warn(r.Context()).Err(err).Msg("Treating request as anonymous")
		}
		return nil
	}
	return user
}
