package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/storefront/internal/domain"
)

// CatalogService is the slice of the catalog the handlers consume.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, cfg domain.FilterConfig) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	CategoryProducts(ctx context.Context, id int64, cfg domain.FilterConfig) (*domain.Category, []domain.Product, error)
	Sales(ctx context.Context, cfg domain.FilterConfig) ([]domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductResponse struct {
	domain.Product
	DiscountPercent int `json:"discount_percent"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductResponse{Product: p, DiscountPercent: p.DiscountPercent()}
	}
	return out
}

// Get handles GET /api/v1/products.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx, parseFilterConfig(r))
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: toProductResponses(products)})
}

// GetByID handles GET /api/v1/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProductResponse{
		Product:         *product,
		DiscountPercent: product.DiscountPercent(),
	})
}

// Sales handles GET /api/v1/sales: discounted products only.
func (h *ProductHandler) Sales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Sales(ctx, parseFilterConfig(r))
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: toProductResponses(products)})
}
