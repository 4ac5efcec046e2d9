package cache

import (
	"context"
	"errors"

	"github.com/example/storefront/internal/domain"
)

// CatalogCache fronts the catalog source with a shared cache. Consumers
// define this interface, not the Redis implementation.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	SetCategories(ctx context.Context, categories []domain.Category) error
}

var ErrCacheMiss = errors.New("cache miss")
