package query

import (
	"context"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// ListAlternativesQuery represents the query for a product's alternatives
type ListAlternativesQuery struct {
	ProductID uint
}

// ListAlternativesHandler handles list alternatives query
type ListAlternativesHandler struct {
	repo domain.ProductRepository
}

// NewListAlternativesHandler creates a new list alternatives handler
func NewListAlternativesHandler(repo domain.ProductRepository) *ListAlternativesHandler {
	return &ListAlternativesHandler{repo: repo}
}

// Handle returns the alternatives of an existing product
func (h *ListAlternativesHandler) Handle(ctx context.Context, query ListAlternativesQuery) ([]domain.Alternative, error) {
	if query.ProductID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if _, err := h.repo.GetProductByID(ctx, query.ProductID); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", query.ProductID, err)
	}

	alternatives, err := h.repo.ListAlternatives(ctx, query.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alternatives: %w", err)
	}
	if alternatives == nil {
		alternatives = []domain.Alternative{}
	}

	return alternatives, nil
}
