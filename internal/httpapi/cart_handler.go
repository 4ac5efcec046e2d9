package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/domain"
)

type CartHandler struct {
	carts   *cart.Registry
	catalog CatalogService
	timeout time.Duration
}

func NewCartHandler(carts *cart.Registry, catalog CatalogService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartLine `json:"items"`
	TotalCount int               `json:"total_count"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

func cartResponse(store *cart.Store) CartResponseDTO {
	return CartResponseDTO{
		Items:      store.Lines(),
		TotalCount: store.TotalCount(),
		TotalPrice: store.TotalPrice(),
	}
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Cart(sessionFromContext(r.Context()))
	respondJSON(w, http.StatusOK, cartResponse(store))
}

// AddItem handles POST /api/v1/cart/items. The product metadata is
// looked up in the catalog, never trusted from the request body.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	store := h.carts.Cart(sessionFromContext(r.Context()))
	store.AddItem(product.Ref(), req.Quantity)

	respondJSON(w, http.StatusCreated, cartResponse(store))
}

// UpdateQuantity handles PUT /api/v1/cart/items/{product_id}. The
// store's permissive contract is passed through: a quantity below 1 or
// an unknown product id leaves the cart unchanged and still answers 200.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store := h.carts.Cart(sessionFromContext(r.Context()))
	store.UpdateQuantity(productID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

// RemoveItem handles DELETE /api/v1/cart/items/{product_id}. Removing
// an id that is not in the cart is a no-op, not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	store := h.carts.Cart(sessionFromContext(r.Context()))
	store.RemoveItem(productID)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Cart(sessionFromContext(r.Context()))
	store.Clear()

	respondJSON(w, http.StatusOK, cartResponse(store))
}
