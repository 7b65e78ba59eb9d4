package command

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/events"
	"github.com/ecoscan/ecoscan-api/internal/store/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func fixedClock() Clock {
	return func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC) }
}

func TestRegisterUserHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	h := NewRegisterUserHandler(store)

	user, err := h.Handle(ctx, RegisterUserCommand{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "", user.Email)
	assert.NotEqual(t, "secret123", user.Password, "password is stored hashed")

	_, err = h.Handle(ctx, RegisterUserCommand{Username: "alice", Password: "another1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestRegisterUserHandler_Validation(t *testing.T) {
	h := NewRegisterUserHandler(memory.New())

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{name: "blank username", cmd: RegisterUserCommand{Username: "  ", Password: "secret123"}},
		{name: "short password", cmd: RegisterUserCommand{Username: "bob", Password: "12345"}},
		{name: "password over 72 bytes", cmd: RegisterUserCommand{Username: "bob", Password: strings.Repeat("é", 40)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := NewRegisterUserHandler(store).Handle(ctx, RegisterUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	h := NewLoginUserHandler(store)

	user, err := h.Handle(ctx, LoginUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = h.Handle(ctx, LoginUserCommand{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = h.Handle(ctx, LoginUserCommand{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.Handle(ctx, LoginUserCommand{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAddFavoriteHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	publisher := &recordingPublisher{}
	h := NewAddFavoriteHandler(store, store, publisher, fixedClock())

	favorite, err := h.Handle(ctx, AddFavoriteCommand{UserID: 3, ProductID: 1})
	require.NoError(t, err)
	require.NotNil(t, favorite.UserID)
	assert.Equal(t, uint(3), *favorite.UserID)
	require.NotNil(t, favorite.ProductID)
	assert.Equal(t, uint(1), *favorite.ProductID)
	assert.Equal(t, "2024-06-01T08:30:00.000Z", favorite.CreatedAt)

	var snapshot domain.Product
	require.NoError(t, json.Unmarshal(favorite.ProductData, &snapshot))
	assert.Equal(t, "Organic Oat Milk", snapshot.Name)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EventTypeFavoriteAdded, publisher.events[0].EventType)
	assert.Equal(t, uint(3), publisher.events[0].UserID)
	assert.Equal(t, favorite.ID, *publisher.events[0].FavoriteID)

	again, err := h.Handle(ctx, AddFavoriteCommand{UserID: 3, ProductID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, favorite.ID, again.ID, "duplicates are separate favorites")
}

func TestAddFavoriteHandler_UnknownProduct(t *testing.T) {
	store := memory.New()
	h := NewAddFavoriteHandler(store, store, events.NoopPublisher{}, fixedClock())

	_, err := h.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	favorites, err := store.GetFavoritesByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestAddFavoriteHandler_PublishFailureIsSwallowed(t *testing.T) {
	store := memory.New()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	h := NewAddFavoriteHandler(store, store, publisher, fixedClock())

	_, err := h.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ProductID: 2})
	assert.NoError(t, err)
	assert.Len(t, publisher.events, 1)
}

func TestRemoveFavoriteHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	publisher := &recordingPublisher{}
	add := NewAddFavoriteHandler(store, store, events.NoopPublisher{}, fixedClock())
	h := NewRemoveFavoriteHandler(store, publisher)

	favorite, err := add.Handle(ctx, AddFavoriteCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)

	err = h.Handle(ctx, RemoveFavoriteCommand{UserID: 2, FavoriteID: favorite.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, h.Handle(ctx, RemoveFavoriteCommand{UserID: 1, FavoriteID: favorite.ID}))
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EventTypeFavoriteRemoved, publisher.events[0].EventType)

	err = h.Handle(ctx, RemoveFavoriteCommand{UserID: 1, FavoriteID: favorite.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSearchHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	publisher := &recordingPublisher{}
	h := NewRecordSearchHandler(store, publisher, fixedClock())

	require.NoError(t, h.Handle(ctx, RecordSearchCommand{UserID: 4, Query: "oat"}))

	entries, err := store.GetRecentSearches(ctx, 4, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "oat", entries[0].Query)
	assert.Equal(t, "2024-06-01T08:30:00.000Z", entries[0].CreatedAt)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EventTypeSearchPerformed, publisher.events[0].EventType)
	assert.Equal(t, "oat", publisher.events[0].Query)
}
