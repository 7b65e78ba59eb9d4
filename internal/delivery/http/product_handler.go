package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/usecase/query"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

const productNotFound = "Product not found"

// GetProductByBarcode godoc
// @Summary Look up a product by barcode
// @Tags Products
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse
// @Router /api/products/barcode/{barcode} [get]
func (h *Handler) GetProductByBarcode(w http.ResponseWriter, r *http.Request) {
	product, err := h.queries.GetProductByBarcode.Handle(r.Context(), query.GetProductByBarcodeQuery{
		Barcode: mux.Vars(r)["barcode"],
	})
	h.metrics.lookup("barcode", err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondError(w, http.StatusNotFound, productNotFound)
			return
		}
		writeError(w, r, err, productNotFound)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive match on name, brand and category, substring match on barcode. Searches by a logged-in user are added to their history.
// @Tags Products
// @Produce json
// @Param q query string true "Search text"
// @Param userId query int false "Legacy user id; only honored when it matches the session user"
// @Success 200 {array} domain.Product
// @Failure 400 {object} ErrorResponse
// @Router /api/products/search [get]
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		respondError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	var recordFor *uint
	if user := h.optionalUser(r); user != nil {
		recordFor = domain.UintPtr(user.ID)
		if legacy := r.URL.Query().Get("userId"); legacy != "" && legacy != strconv.FormatUint(uint64(user.ID), 10) {
			logger.Debug(r.Context()).
				Str("user_id_param", legacy).
				Uint("session_user_id", user.ID).
				Msg("Ignoring userId parameter that does not match the session")
		}
	}

	products, err := h.queries.SearchProducts.Handle(r.Context(), query.SearchProductsQuery{
		Query:  q,
		UserID: recordFor,
	})
	if err != nil {
		writeError(w, r, err, productNotFound)
		return
	}

	h.metrics.lookup("search", len(products) > 0)
	respondJSON(w, http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.queries.GetProduct.Handle(r.Context(), query.GetProductQuery{ID: id})
	h.metrics.lookup("id", err == nil)
	if err != nil {
		writeError(w, r, err, productNotFound)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// ListAlternatives godoc
// @Summary Suggested alternatives
// @Description More sustainable products suggested for a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} domain.Alternative
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/alternatives [get]
func (h *Handler) ListAlternatives(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	alternatives, err := h.queries.ListAlternatives.Handle(r.Context(), query.ListAlternativesQuery{ProductID: id})
	if err != nil {
		writeError(w, r, err, productNotFound)
		return
	}

	respondJSON(w, http.StatusOK, alternatives)
}
