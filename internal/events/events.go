package events

import (
	"context"
	"time"
)

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeSearchPerformed = "search.performed"
)

// DefaultTopic carries all user activity events
const DefaultTopic = "ecoscan-activity"

// ActivityEvent is a user action other services may react to
type ActivityEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     uint      `json:"user_id"`
	ProductID  *uint     `json:"product_id,omitempty"`
	FavoriteID *uint     `json:"favorite_id,omitempty"`
	Query      string    `json:"query,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers activity events
type Publisher interface {
	Publish(ctx context.Context, event ActivityEvent) error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event ActivityEvent) error {
	return nil
}
