package query

import (
	"context"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	product, err := h.repo.GetProductByID(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", query.ID, err)
	}

	return product, nil
}
