package command

import (
	"context"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/events"
)

// RecordSearchCommand appends a query to a user's search history
type RecordSearchCommand struct {
	UserID uint
	Query  string
}

// RecordSearchHandler handles record search command
type RecordSearchHandler struct {
	history   domain.SearchHistoryRepository
	publisher events.Publisher
	clock     Clock
}

// NewRecordSearchHandler creates a new record search handler
func NewRecordSearchHandler(history domain.SearchHistoryRepository, publisher events.Publisher, clock Clock) *RecordSearchHandler {
	return &RecordSearchHandler{history: history, publisher: publisher, clock: clock}
}

// Handle executes the record search command
func (h *RecordSearchHandler) Handle(ctx context.Context, cmd RecordSearchCommand) error {
	_, err := h.history.AddSearchHistory(ctx, domain.NewSearchHistory{
		UserID:    domain.UintPtr(cmd.UserID),
		Query:     cmd.Query,
		CreatedAt: h.clock.timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	publish(ctx, h.publisher, events.ActivityEvent{
		EventType: events.EventTypeSearchPerformed,
		UserID:    cmd.UserID,
		Query:     cmd.Query,
	})
	return nil
}
