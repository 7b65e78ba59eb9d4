package command

import (
	"context"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/events"
)

// RemoveFavoriteCommand represents the command to delete a favorite
type RemoveFavoriteCommand struct {
	UserID     uint
	FavoriteID uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	favorites domain.FavoriteRepository
	publisher events.Publisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(favorites domain.FavoriteRepository, publisher events.Publisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites, publisher: publisher}
}

// Handle deletes the favorite if it belongs to the caller. A favorite owned
// by someone else yields domain.ErrForbidden.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	favorite, err := h.favorites.GetFavorite(ctx, cmd.FavoriteID)
	if err != nil {
		return fmt.Errorf("failed to find favorite %d: %w", cmd.FavoriteID, err)
	}

	if !favorite.OwnedBy(cmd.UserID) {
		return fmt.Errorf("favorite %d: %w", cmd.FavoriteID, domain.ErrForbidden)
	}

	removed, err := h.favorites.RemoveFavorite(ctx, cmd.FavoriteID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		// lost a race with a concurrent delete
		return fmt.Errorf("favorite %d: %w", cmd.FavoriteID, domain.ErrNotFound)
	}

	publish(ctx, h.publisher, events.ActivityEvent{
		EventType:  events.EventTypeFavoriteRemoved,
		UserID:     cmd.UserID,
		ProductID:  favorite.ProductID,
		FavoriteID: domain.UintPtr(favorite.ID),
	})

	return nil
}
