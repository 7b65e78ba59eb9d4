package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/events"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// AddFavoriteCommand represents the command to favorite a product
type AddFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	products  domain.ProductRepository
	favorites domain.FavoriteRepository
	publisher events.Publisher
	clock     Clock
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(
	products domain.ProductRepository,
	favorites domain.FavoriteRepository,
	publisher events.Publisher,
	clock Clock,
) *AddFavoriteHandler {
	return &AddFavoriteHandler{
		products:  products,
		favorites: favorites,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle stores a favorite with a snapshot of the product as it is now.
// Duplicates are allowed.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	product, err := h.products.GetProductByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", cmd.ProductID, err)
	}

	snapshot, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot product: %w", err)
	}

	favorite, err := h.favorites.AddFavorite(ctx, domain.NewFavorite{
		UserID:      domain.UintPtr(cmd.UserID),
		ProductID:   domain.UintPtr(product.ID),
		ProductData: snapshot,
		CreatedAt:   h.clock.timestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	publish(ctx, h.publisher, events.ActivityEvent{
		EventType:  events.EventTypeFavoriteAdded,
		UserID:     cmd.UserID,
		ProductID:  domain.UintPtr(product.ID),
		FavoriteID: domain.UintPtr(favorite.ID),
	})

	return favorite, nil
}

// publish delivers an event and only logs failures
func publish(ctx context.Context, publisher events.Publisher, event events.ActivityEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Uint("user_id", event.UserID).
			Msg("Failed to publish activity event")
	}
}
