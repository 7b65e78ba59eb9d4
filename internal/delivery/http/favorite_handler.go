package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
	"github.com/ecoscan/ecoscan-api/internal/usecase/query"
)

const favoriteNotFound = "Favorite not found"

type addFavoriteRequest struct {
	ProductID uint `json:"productId" validate:"required,gt=0"`
}

// AddFavorite godoc
// @Summary Add a favorite
// @Description Favorite a product for the session user. productData is a snapshot of the product.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body addFavoriteRequest true "Product to favorite"
// @Success 201 {object} domain.Favorite
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req addFavoriteRequest
	if reqErr := decodeAndValidate(w, r, &req, "Invalid favorite data"); reqErr != nil {
		reqErr.write(w)
		return
	}

	favorite, err := h.commands.AddFavorite.Handle(r.Context(), command.AddFavoriteCommand{
		UserID:    user.ID,
		ProductID: req.ProductID,
	})
	if err != nil {
		writeError(w, r, err, productNotFound)
		return
	}

	h.metrics.favoritesAdded.Inc()
	respondJSON(w, http.StatusCreated, favorite)
}

// ListFavorites godoc
// @Summary List favorites
// @Description Favorites of the session user, oldest first, with current product data where available
// @Tags Favorites
// @Produce json
// @Success 200 {array} domain.Favorite
// @Failure 401 {object} ErrorResponse
// @Router /api/favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request, user *domain.User) {
	favorites, err := h.queries.ListFavorites.Handle(r.Context(), query.ListFavoritesQuery{UserID: user.ID})
	if err != nil {
		writeError(w, r, err, favoriteNotFound)
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// RemoveFavorite godoc
// @Summary Remove a favorite
// @Description Only the owner may remove a favorite; other users get 404
// @Tags Favorites
// @Param id path int true "Favorite ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites/{id} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid favorite ID")
		return
	}

	err := h.commands.RemoveFavorite.Handle(r.Context(), command.RemoveFavoriteCommand{
		UserID:     user.ID,
		FavoriteID: id,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(w, http.StatusNotFound, favoriteNotFound)
			return
		}
		writeError(w, r, err, favoriteNotFound)
		return
	}

	h.metrics.favoritesRemoved.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// RecentSearches godoc
// @Summary Recent searches
// @Description The session user's latest searches, newest first
// @Tags Search History
// @Produce json
// @Param limit query int false "Maximum entries (default 10, values above 100 are capped)"
// @Success 200 {array} domain.SearchHistory
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/search-history [get]
func (h *Handler) RecentSearches(w http.ResponseWriter, r *http.Request, user *domain.User) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.queries.RecentSearches.Handle(r.Context(), query.RecentSearchesQuery{
		UserID: user.ID,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, r, err, "Search history not found")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
