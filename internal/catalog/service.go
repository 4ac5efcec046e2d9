package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/example/storefront/internal/cache"
	"github.com/example/storefront/internal/domain"
	logx "github.com/example/storefront/pkg/logger"
)

// Source is where the catalog actually lives: the upstream HTTP API or
// the embedded database. Consumers define this interface, not the
// implementations.
type Source interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	CategoryProducts(ctx context.Context, id int64) (*domain.Category, []domain.Product, error)
}

// Service serves catalog reads with a shared cache in front of the
// source and applies the filter/sort pipeline on top.
type Service struct {
	source Source
	cache  cache.CatalogCache // optional
	sfg    singleflight.Group // prevents cache stampede on the full lists
}

func NewService(source Source, cache cache.CatalogCache) *Service {
	return &Service{
		source: source,
		cache:  cache,
	}
}

// Products returns the filtered, ordered product list.
func (s *Service) Products(ctx context.Context, cfg domain.FilterConfig) ([]domain.Product, error) {
	all, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterAndSort(all, cfg), nil
}

// Sales returns only discounted products, with the rest of the config
// still applied.
func (s *Service) Sales(ctx context.Context, cfg domain.FilterConfig) ([]domain.Product, error) {
	cfg.OnlyDiscounted = true
	return s.Products(ctx, cfg)
}

// Product returns a single product by id.
func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.source.Product(ctx, id)
}

// Categories returns the category list.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.cache == nil {
		return s.source.Categories(ctx)
	}

	v, err, _ := s.sfg.Do("categories", func() (interface{}, error) {
		categories, err := s.cache.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logx.Warn().Err(err).Msg("categories cache get failed")
		}

		categories, err = s.source.Categories(ctx)
		if err != nil {
			return nil, err
		}

		if errSet := s.cache.SetCategories(ctx, categories); errSet != nil {
			logx.Warn().Err(errSet).Msg("categories cache set failed")
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

// CategoryProducts returns a category together with its filtered,
// ordered product list.
func (s *Service) CategoryProducts(ctx context.Context, id int64, cfg domain.FilterConfig) (*domain.Category, []domain.Product, error) {
	category, products, err := s.source.CategoryProducts(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return category, FilterAndSort(products, cfg), nil
}

func (s *Service) allProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.source.Products(ctx)
	}

	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logx.Warn().Err(err).Msg("products cache get failed")
		}

		products, err = s.source.Products(ctx)
		if err != nil {
			return nil, err
		}

		if errSet := s.cache.SetProducts(ctx, products); errSet != nil {
			logx.Warn().Err(errSet).Msg("products cache set failed")
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
