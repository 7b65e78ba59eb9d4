package query

import (
	"context"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

const (
	DefaultRecentSearchLimit = 10
	MaxRecentSearchLimit     = 100
)

// RecentSearchesQuery represents the query for a user's latest searches.
// A zero Limit means DefaultRecentSearchLimit; larger limits are capped at
// MaxRecentSearchLimit.
type RecentSearchesQuery struct {
	UserID uint
	Limit  int
}

// RecentSearchesHandler handles recent searches query
type RecentSearchesHandler struct {
	repo domain.SearchHistoryRepository
}

// NewRecentSearchesHandler creates a new recent searches handler
func NewRecentSearchesHandler(repo domain.SearchHistoryRepository) *RecentSearchesHandler {
	return &RecentSearchesHandler{repo: repo}
}

// Handle executes the recent searches query
func (h *RecentSearchesHandler) Handle(ctx context.Context, query RecentSearchesQuery) ([]domain.SearchHistory, error) {
	limit := query.Limit
	if limit == 0 {
		limit = DefaultRecentSearchLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrValidation)
	}
	if limit > MaxRecentSearchLimit {
		limit = MaxRecentSearchLimit
	}

	entries, err := h.repo.GetRecentSearches(ctx, query.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent searches: %w", err)
	}

	return entries, nil
}
