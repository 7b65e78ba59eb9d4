package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/session"
	"github.com/ecoscan/ecoscan-api/internal/store/memory"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestHashPassword_TooLong(t *testing.T) {
	// 40 runes, 80 bytes
	_, err := HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}

type stubResolver struct {
	userID uint
	err    error
}

func (s stubResolver) Resolve(r *http.Request) (uint, error) {
	return s.userID, s.err
}

func TestSessionAuthenticator_CurrentUser(t *testing.T) {
	store := memory.New()
	user, err := store.CreateUser(context.Background(), domain.NewUser{Username: "alice", Password: "hash"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		resolver stubResolver
		wantUser *domain.User
		wantErr  error
	}{
		{name: "valid session", resolver: stubResolver{userID: user.ID}, wantUser: user},
		{name: "no session", resolver: stubResolver{err: session.ErrNoSession}, wantErr: ErrNotAuthenticated},
		{name: "user deleted", resolver: stubResolver{userID: 99}, wantErr: ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewSessionAuthenticator(tt.resolver, store)
			got, err := a.CurrentUser(httptest.NewRequest(http.MethodGet, "/api/user", nil))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestSessionAuthenticator_StoreFailureIsNotUnauthenticated(t *testing.T) {
	a := NewSessionAuthenticator(stubResolver{err: errors.New("redis down")}, memory.New())

	_, err := a.CurrentUser(httptest.NewRequest(http.MethodGet, "/api/user", nil))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionAuthenticator_WithManager(t *testing.T) {
	store := memory.New()
	user, err := store.CreateUser(context.Background(), domain.NewUser{Username: "bob", Password: "hash"})
	require.NoError(t, err)

	manager := session.NewManager(session.NewMemoryStore(), session.Options{Secret: "s"})
	rec := httptest.NewRecorder()
	require.NoError(t, manager.Start(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil), user.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, err := NewSessionAuthenticator(manager, store).CurrentUser(req)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}
