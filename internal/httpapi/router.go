package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products   *ProductHandler
	Categories *CategoryHandler
	Cart       *CartHandler
	Orders     *OrderHandler
}

// NewRouter assembles the middleware stack and all storefront routes.
func NewRouter(h Handlers, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", h.Categories.Get)
		r.Get("/categories/{id}", h.Categories.Products)

		r.Get("/products", h.Products.Get)
		r.Get("/products/{id}", h.Products.GetByID)
		r.Get("/sales", h.Products.Sales)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Delete("/", h.Cart.Clear)
		})

		r.Post("/order", h.Orders.Submit)
	})

	return r
}
