package upstream

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/example/storefront/internal/domain"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestProducts_DecodesDiscountVariants(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		// discont_price appears as a number, null, absent and zero.
		w.Write([]byte(`[
			{"id": 1, "title": "Pruner", "price": 35, "discont_price": 28},
			{"id": 2, "title": "Watering Can", "price": 25, "discont_price": null},
			{"id": 3, "title": "Compost", "price": 14},
			{"id": 4, "title": "Gloves", "price": 9, "discont_price": 0}
		]`))
	}))
	defer srv.Close()

	products, err := client.Products(t.Context())
	if err != nil {
		t.Fatalf("Products() error: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}

	if !products[0].Discounted() {
		t.Error("product 1 should be discounted")
	}
	if products[0].DiscountPercent() != 20 {
		t.Errorf("expected 20%% discount, got %d", products[0].DiscountPercent())
	}
	for _, p := range products[1:] {
		if p.Discounted() {
			t.Errorf("product %d should not be discounted", p.ID)
		}
		if !p.EffectivePrice().Equal(p.Price) {
			t.Errorf("product %d effective price should fall back to list price", p.ID)
		}
	}
}

func TestProducts_ToleratesMissingPrice(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "title": "No price"}]`))
	}))
	defer srv.Close()

	products, err := client.Products(t.Context())
	if err != nil {
		t.Fatalf("Products() error: %v", err)
	}
	if !products[0].Price.IsZero() {
		t.Errorf("missing price should decode as zero, got %s", products[0].Price)
	}
}

func TestProduct_SingleElementArray(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id": 7, "title": "Pruner", "price": 35}]`))
	}))
	defer srv.Close()

	product, err := client.Product(t.Context(), 7)
	if err != nil {
		t.Fatalf("Product() error: %v", err)
	}
	if product.ID != 7 || product.Title != "Pruner" {
		t.Errorf("unexpected product %+v", product)
	}
}

func TestProduct_ErrEnvelopeMeansNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ERR", "message": "no such product"}`))
	}))
	defer srv.Close()

	_, err := client.Product(t.Context(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProduct_HTTP404MeansNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.Product(t.Context(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryProducts(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories/4" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"category": {"id": 4, "title": "Tools and equipment"},
			"data": [{"id": 5, "title": "Pruner", "price": 35, "discont_price": 28, "categoryId": 4}]
		}`))
	}))
	defer srv.Close()

	category, products, err := client.CategoryProducts(t.Context(), 4)
	if err != nil {
		t.Fatalf("CategoryProducts() error: %v", err)
	}
	if category.Title != "Tools and equipment" {
		t.Errorf("unexpected category %+v", category)
	}
	if len(products) != 1 || products[0].ID != 5 {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestSubmitOrder_Success(t *testing.T) {
	var received domain.OrderRequest
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order/send" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode order: %v", err)
		}
		w.Write([]byte(`{"status": "OK"}`))
	}))
	defer srv.Close()

	order := domain.OrderRequest{
		Customer: domain.Customer{Name: "Ann", Phone: "+7 (999) 123-45-67", Email: "ann@example.com"},
		Items:    []domain.CartLine{{ProductRef: domain.ProductRef{ProductID: 1, Title: "Pruner"}, Quantity: 2}},
	}

	result, err := client.SubmitOrder(t.Context(), order)
	if err != nil {
		t.Fatalf("SubmitOrder() error: %v", err)
	}
	if result.Status != domain.OrderStatusOK {
		t.Errorf("expected OK, got %+v", result)
	}
	if received.Customer.Name != "Ann" || len(received.Items) != 1 {
		t.Errorf("upstream received wrong payload: %+v", received)
	}
}

func TestSubmitOrder_ErrStatusPassesThrough(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ERR", "message": "storage offline"}`))
	}))
	defer srv.Close()

	result, err := client.SubmitOrder(t.Context(), domain.OrderRequest{})
	if err != nil {
		t.Fatalf("SubmitOrder() error: %v", err)
	}
	if result.Status != domain.OrderStatusErr || result.Message != "storage offline" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestCircuitBreaker_OpensAfterServerErrors(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Consecutive 5xx responses count as failures and open the breaker.
	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = client.Products(t.Context())
		if errors.Is(lastErr, gobreaker.ErrOpenState) {
			return
		}
	}
	t.Errorf("breaker never opened, last error: %v", lastErr)
}
