package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/domain"
)

type catalogMock struct {
	products   []domain.Product
	categories []domain.Category
	err        error
}

func (m catalogMock) Categories(context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m catalogMock) Products(_ context.Context, cfg domain.FilterConfig) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if cfg.OnlyDiscounted && !p.Discounted() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m catalogMock) Product(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m catalogMock) CategoryProducts(ctx context.Context, id int64, cfg domain.FilterConfig) (*domain.Category, []domain.Product, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for _, c := range m.categories {
		if c.ID == id {
			products, _ := m.Products(ctx, cfg)
			return &c, products, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (m catalogMock) Sales(ctx context.Context, cfg domain.FilterConfig) ([]domain.Product, error) {
	cfg.OnlyDiscounted = true
	return m.Products(ctx, cfg)
}

type submitterMock struct {
	result   domain.OrderResult
	err      error
	received *domain.OrderRequest
}

func (m *submitterMock) SubmitOrder(_ context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	m.received = &order
	if m.err != nil {
		return domain.OrderResult{}, m.err
	}
	return m.result, nil
}

func testProducts() []domain.Product {
	withDiscount := domain.Product{
		ID:    1,
		Title: "Garden Pruner",
		Price: decimal.NewFromInt(35),
		DiscountPrice: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(28),
			Valid:   true,
		},
		Image: "/product_img/5.jpeg",
	}
	plain := domain.Product{
		ID:    2,
		Title: "Watering Can",
		Price: decimal.NewFromInt(25),
	}
	return []domain.Product{withDiscount, plain}
}

func newTestRouter(t *testing.T, catalog CatalogService, submitter OrderSubmitter) *chi.Mux {
	carts := cart.NewRegistry(time.Minute)
	t.Cleanup(func() { carts.Close() })

	timeout := 5 * time.Second
	return NewRouter(Handlers{
		Products:   NewProductHandler(catalog, timeout),
		Categories: NewCategoryHandler(catalog, timeout),
		Cart:       NewCartHandler(carts, catalog, timeout),
		Orders:     NewOrderHandler(carts, submitter, timeout),
	}, timeout)
}

// session keeps the session cookie between requests, like a browser would.
type session struct {
	router  *chi.Mux
	cookies []*http.Cookie
}

func (s *session) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if len(rec.Result().Cookies()) > 0 {
		s.cookies = rec.Result().Cookies()
	}
	return rec
}
