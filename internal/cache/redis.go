package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/storefront/internal/domain"
)

const (
	productsKey   = "catalog:products"
	categoriesKey = "catalog:categories"
)

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

func (r *RedisCache) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.get(ctx, productsKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisCache) SetProducts(ctx context.Context, products []domain.Product) error {
	return r.set(ctx, productsKey, products)
}

func (r *RedisCache) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.get(ctx, categoriesKey, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *RedisCache) SetCategories(ctx context.Context, categories []domain.Category) error {
	return r.set(ctx, categoriesKey, categories)
}

func (r *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	// Jitter spreads expiry so both keys don't miss at once.
	jitter := time.Duration(rand.Intn(60)) * time.Second
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
