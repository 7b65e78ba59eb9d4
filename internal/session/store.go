package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when a request carries no live session
var ErrNoSession = errors.New("no session")

// Store keeps the server side of a session: session id -> user id, with a TTL
type Store interface {
	Save(ctx context.Context, id string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, id string) (uint, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is a process-local session store. Expired entries are
// dropped when they are next read.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return 0, ErrNoSession
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return 0, ErrNoSession
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
