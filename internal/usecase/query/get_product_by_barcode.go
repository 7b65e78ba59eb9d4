package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// GetProductByBarcodeQuery looks a product up by its scanned barcode
type GetProductByBarcodeQuery struct {
	Barcode string
}

// GetProductByBarcodeHandler handles get product by barcode query
type GetProductByBarcodeHandler struct {
	repo domain.ProductRepository
}

// NewGetProductByBarcodeHandler creates a new get product by barcode handler
func NewGetProductByBarcodeHandler(repo domain.ProductRepository) *GetProductByBarcodeHandler {
	return &GetProductByBarcodeHandler{repo: repo}
}

// Handle executes the get product by barcode query
func (h *GetProductByBarcodeHandler) Handle(ctx context.Context, query GetProductByBarcodeQuery) (*domain.Product, error) {
	if strings.TrimSpace(query.Barcode) == "" {
		return nil, fmt.Errorf("%w: barcode is required", domain.ErrValidation)
	}

	product, err := h.repo.GetProductByBarcode(ctx, query.Barcode)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}

	return product, nil
}
