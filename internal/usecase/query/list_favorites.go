package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// ListFavoritesQuery represents the query for a user's favorites
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	favorites domain.FavoriteRepository
	products  domain.ProductRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(favorites domain.FavoriteRepository, products domain.ProductRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{favorites: favorites, products: products}
}

// Handle returns the user's favorites with productData refreshed from the
// current product where it still exists; otherwise the stored snapshot is kept.
func (h *ListFavoritesHandler) Handle(ctx context.Context, query ListFavoritesQuery) ([]domain.Favorite, error) {
	favorites, err := h.favorites.GetFavoritesByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		return []domain.Favorite{}, nil
	}

	current := make(map[uint][]byte)
	for i := range favorites {
		if favorites[i].ProductID == nil {
			continue
		}
		productID := *favorites[i].ProductID

		data, seen := current[productID]
		if !seen {
			data = h.currentProductData(ctx, productID)
			current[productID] = data
		}
		if data != nil {
			favorites[i].ProductData = data
		}
	}

	return favorites, nil
}

// currentProductData returns nil when the snapshot should be kept
func (h *ListFavoritesHandler) currentProductData(ctx context.Context, productID uint) []byte {
	product, err := h.products.GetProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn(ctx).Err(err).Uint("product_id", productID).Msg("Falling back to favorite snapshot")
		}
		return nil
	}

	data, err := json.Marshal(product)
	if err != nil {
		return nil
	}
	return data
}
