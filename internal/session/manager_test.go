package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	return NewManager(store, Options{Secret: "test-secret", TTL: time.Hour}), store
}

// startSession runs Start and returns the cookie it set
func startSession(t *testing.T, m *Manager, r *http.Request, userID uint) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Start(rec, r, userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_StartAndResolve(t *testing.T) {
	m, _ := newTestManager()

	cookie := startSession(t, m, httptest.NewRequest(http.MethodPost, "/api/login", nil), 5)
	assert.Equal(t, "ecoscan.sid", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.AddCookie(cookie)

	userID, err := m.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, uint(5), userID)
}

func TestManager_ResolveWithoutCookie(t *testing.T) {
	m, _ := newTestManager()

	_, err := m.Resolve(httptest.NewRequest(http.MethodGet, "/api/favorites", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RejectsTamperedCookie(t *testing.T) {
	m, _ := newTestManager()
	cookie := startSession(t, m, httptest.NewRequest(http.MethodPost, "/api/login", nil), 5)

	other := NewManager(NewMemoryStore(), Options{Secret: "another-secret", TTL: time.Hour})
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.AddCookie(cookie)

	_, err := other.Resolve(req)
	assert.ErrorIs(t, err, ErrNoSession)

	forged := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	forged.AddCookie(&http.Cookie{Name: "ecoscan.sid", Value: cookie.Value + "x"})
	_, err = m.Resolve(forged)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_StartRotatesSession(t *testing.T) {
	m, store := newTestManager()
	first := startSession(t, m, httptest.NewRequest(http.MethodPost, "/api/login", nil), 5)

	relogin := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	relogin.AddCookie(first)
	second := startSession(t, m, relogin, 6)
	assert.NotEqual(t, first.Value, second.Value)
	assert.Len(t, store.sessions, 1)

	oldReq := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	oldReq.AddCookie(first)
	_, err := m.Resolve(oldReq)
	assert.ErrorIs(t, err, ErrNoSession)

	newReq := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	newReq.AddCookie(second)
	userID, err := m.Resolve(newReq)
	require.NoError(t, err)
	assert.Equal(t, uint(6), userID)
}

func TestManager_Destroy(t *testing.T) {
	m, store := newTestManager()
	cookie := startSession(t, m, httptest.NewRequest(http.MethodPost, "/api/login", nil), 5)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(rec, req))

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)
	assert.Empty(t, store.sessions)

	_, err := m.Resolve(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_DestroyWithoutSession(t *testing.T) {
	m, _ := newTestManager()
	rec := httptest.NewRecorder()

	require.NoError(t, m.Destroy(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil)))
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestManager_ExpiredServerSide(t *testing.T) {
	m, store := newTestManager()
	cookie := startSession(t, m, httptest.NewRequest(http.MethodPost, "/api/login", nil), 5)

	require.NoError(t, store.Delete(context.Background(), onlyKey(t, store)))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(cookie)
	_, err := m.Resolve(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func onlyKey(t *testing.T, s *MemoryStore) string {
	t.Helper()
	require.Len(t, s.sessions, 1)
	for k := range s.sessions {
		return k
	}
	return ""
}

func TestTokenSigner(t *testing.T) {
	signer := NewTokenSigner("secret")
	issued := time.Now()

	token, err := signer.Sign("session-1", issued, time.Hour)
	require.NoError(t, err)

	id, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	expired, err := signer.Sign("session-2", issued.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = signer.Parse(expired)
	assert.Error(t, err)

	_, err = signer.Parse("not-a-jwt")
	assert.Error(t, err)
}
