package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// Options configures the session cookie
type Options struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
}

// Manager issues, resolves and destroys cookie-backed sessions
type Manager struct {
	store  Store
	signer *TokenSigner
	opts   Options
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "ecoscan.sid"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		signer: NewTokenSigner(opts.Secret),
		opts:   opts,
		now:    time.Now,
	}
}

// CookieName returns the name of the session cookie
func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

// Start creates a fresh session for userID and sets the cookie. A session
// already carried by r is destroyed first.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, userID uint) error {
	ctx := r.Context()

	if previous, err := m.sessionID(r); err == nil {
		if err := m.store.Delete(ctx, previous); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to delete previous session")
		}
	}

	id := uuid.NewString()
	issuedAt := m.now()

	if err := m.store.Save(ctx, id, userID, m.opts.TTL); err != nil {
		return err
	}

	token, err := m.signer.Sign(id, issuedAt, m.opts.TTL)
	if err != nil {
		_ = m.store.Delete(ctx, id)
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  issuedAt.Add(m.opts.TTL),
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the user id bound to the request's session, or ErrNoSession
func (m *Manager) Resolve(r *http.Request) (uint, error) {
	id, err := m.sessionID(r)
	if err != nil {
		return 0, ErrNoSession
	}
	return m.lookup(r.Context(), id)
}

// Destroy deletes the server-side session, if any, and expires the cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	var deleteErr error
	if id, err := m.sessionID(r); err == nil {
		deleteErr = m.store.Delete(r.Context(), id)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return deleteErr
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return "", err
	}
	return m.signer.Parse(cookie.Value)
}

func (m *Manager) lookup(ctx context.Context, id string) (uint, error) {
	userID, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}
