package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/session"
)

// ErrNotAuthenticated is returned when a request has no valid session
var ErrNotAuthenticated = domain.ErrUnauthorized

// SessionResolver maps a request to the user id of its session
type SessionResolver interface {
	Resolve(r *http.Request) (uint, error)
}

// SessionAuthenticator answers "who is calling" from the session cookie
type SessionAuthenticator struct {
	sessions SessionResolver
	users    domain.UserRepository
}

// NewSessionAuthenticator creates a new authenticator
func NewSessionAuthenticator(sessions SessionResolver, users domain.UserRepository) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, users: users}
}

// CurrentUser returns the authenticated user or ErrNotAuthenticated
func (a *SessionAuthenticator) CurrentUser(r *http.Request) (*domain.User, error) {
	userID, err := a.sessions.Resolve(r)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	user, err := a.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}
