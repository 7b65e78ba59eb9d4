package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

// SearchRecorder appends a query to a user's search history
type SearchRecorder interface {
	Handle(ctx context.Context, cmd command.RecordSearchCommand) error
}

// SearchProductsQuery represents a free-text product search. When UserID is
// set the query is recorded in that user's history.
type SearchProductsQuery struct {
	Query  string
	UserID *uint
}

// SearchProductsHandler handles search products query
type SearchProductsHandler struct {
	repo     domain.ProductRepository
	recorder SearchRecorder
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository, recorder SearchRecorder) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo, recorder: recorder}
}

// Handle executes the search. Recording failures are logged, never returned.
func (h *SearchProductsHandler) Handle(ctx context.Context, query SearchProductsQuery) ([]domain.Product, error) {
	if strings.TrimSpace(query.Query) == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}

	products, err := h.repo.SearchProducts(ctx, query.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	if query.UserID != nil && h.recorder != nil {
		err := h.recorder.Handle(ctx, command.RecordSearchCommand{UserID: *query.UserID, Query: query.Query})
		if err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", *query.UserID).
				Msg("Failed to record search history")
		}
	}

	return products, nil
}
