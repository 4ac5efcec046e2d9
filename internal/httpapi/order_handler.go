package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/domain"
	logx "github.com/example/storefront/pkg/logger"
)

// OrderSubmitter receives the checkout payload: the upstream order
// endpoint or the embedded order store.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error)
}

type OrderHandler struct {
	carts     *cart.Registry
	submitter OrderSubmitter
	timeout   time.Duration
}

func NewOrderHandler(carts *cart.Registry, submitter OrderSubmitter, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		carts:     carts,
		submitter: submitter,
		timeout:   timeout,
	}
}

type OrderRequestDTO struct {
	Customer domain.Customer `json:"customer"`
}

// Submit handles POST /api/v1/order: snapshots the session's cart,
// submits it with the customer block and clears the cart when the
// submission is accepted.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req OrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if msg := validateCustomer(req.Customer); msg != "" {
		respondJSON(w, http.StatusBadRequest, domain.OrderResult{
			Status:  domain.OrderStatusErr,
			Message: msg,
		})
		return
	}

	store := h.carts.Cart(sessionFromContext(r.Context()))
	items := store.Lines()
	if len(items) == 0 {
		respondJSON(w, http.StatusBadRequest, domain.OrderResult{
			Status:  domain.OrderStatusErr,
			Message: "cart is empty",
		})
		return
	}

	result, err := h.submitter.SubmitOrder(ctx, domain.OrderRequest{
		Customer: req.Customer,
		Items:    items,
	})
	if err != nil {
		logx.Error().Err(err).Msg("order submission failed")
		respondJSON(w, http.StatusBadGateway, domain.OrderResult{
			Status:  domain.OrderStatusErr,
			Message: "order submission failed",
		})
		return
	}

	if result.Status == domain.OrderStatusOK {
		store.Clear()
	}

	respondJSON(w, http.StatusOK, result)
}

func validateCustomer(c domain.Customer) string {
	if strings.TrimSpace(c.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(c.Phone) == "" {
		return "phone is required"
	}
	if strings.TrimSpace(c.Email) == "" {
		return "email is required"
	}
	return ""
}
