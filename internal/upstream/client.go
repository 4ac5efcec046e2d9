package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/example/storefront/internal/domain"
)

// Client talks to the external catalog/order API. Transport failures
// and 5xx responses trip a circuit breaker shared by all endpoints;
// other statuses pass through untouched.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[response]
}

type response struct {
	status int
	body   []byte
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb: gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
			Name: "upstream-api",
		}),
	}
}

// Categories fetches the category list from GET /categories/all.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	res, err := c.get(ctx, "/categories/all")
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, fmt.Errorf("upstream categories: unexpected status %d", res.status)
	}

	var categories []domain.Category
	if err := json.Unmarshal(res.body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// Products fetches the full product list from GET /products/all.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	res, err := c.get(ctx, "/products/all")
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, fmt.Errorf("upstream products: unexpected status %d", res.status)
	}

	var products []domain.Product
	if err := json.Unmarshal(res.body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Product fetches a single product from GET /products/{id}. The API
// answers with a one-element array on success and with a
// {status: "ERR"} envelope for unknown ids, both with status 200.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	res, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}
	if res.status == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if res.status != http.StatusOK {
		return nil, fmt.Errorf("upstream product %d: unexpected status %d", id, res.status)
	}

	var products []domain.Product
	if err := json.Unmarshal(res.body, &products); err == nil {
		if len(products) == 0 {
			return nil, domain.ErrNotFound
		}
		return &products[0], nil
	}

	var result domain.OrderResult
	if err := json.Unmarshal(res.body, &result); err == nil && result.Status == domain.OrderStatusErr {
		return nil, domain.ErrNotFound
	}
	return nil, fmt.Errorf("decode product %d: unexpected body", id)
}

type categoryResponse struct {
	Category domain.Category  `json:"category"`
	Data     []domain.Product `json:"data"`
}

// CategoryProducts fetches a category and its products from
// GET /categories/{id}.
func (c *Client) CategoryProducts(ctx context.Context, id int64) (*domain.Category, []domain.Product, error) {
	res, err := c.get(ctx, fmt.Sprintf("/categories/%d", id))
	if err != nil {
		return nil, nil, err
	}
	if res.status == http.StatusNotFound {
		return nil, nil, domain.ErrNotFound
	}
	if res.status != http.StatusOK {
		return nil, nil, fmt.Errorf("upstream category %d: unexpected status %d", id, res.status)
	}

	var cr categoryResponse
	if err := json.Unmarshal(res.body, &cr); err != nil {
		return nil, nil, fmt.Errorf("decode category %d: %w", id, err)
	}
	return &cr.Category, cr.Data, nil
}

// SubmitOrder posts the order to POST /order/send and passes the
// {status, message} envelope through.
func (c *Client) SubmitOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("marshal order: %w", err)
	}

	res, err := c.cb.Execute(func() (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order/send", bytes.NewReader(payload))
		if err != nil {
			return response{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.do(req)
	})
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("submit order: %w", err)
	}
	if res.status != http.StatusOK {
		return domain.OrderResult{}, fmt.Errorf("submit order: unexpected status %d", res.status)
	}

	var result domain.OrderResult
	if err := json.Unmarshal(res.body, &result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string) (response, error) {
	return c.cb.Execute(func() (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return response{}, err
		}
		return c.do(req)
	})
}

func (c *Client) do(req *http.Request) (response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return response{}, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return response{}, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	return response{status: resp.StatusCode, body: body}, nil
}

const maxBodySize = 4 << 20 // 4MB

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	return body, nil
}
