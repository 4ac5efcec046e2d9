package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/storefront/internal/domain"
)

type CategoryHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewCategoryHandler(catalog CatalogService, timeout time.Duration) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type CategoryProductsResponse struct {
	Category domain.Category   `json:"category"`
	Products []ProductResponse `json:"products"`
}

// Get handles GET /api/v1/categories.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: categories})
}

// Products handles GET /api/v1/categories/{id}: the category and its
// filtered product list.
func (h *CategoryHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	category, products, err := h.catalog.CategoryProducts(ctx, id, parseFilterConfig(r))
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &CategoryProductsResponse{
		Category: *category,
		Products: toProductResponses(products),
	})
}
