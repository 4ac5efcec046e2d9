package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/example/storefront/internal/cache"
	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/httpapi"
	"github.com/example/storefront/internal/repository"
	"github.com/example/storefront/internal/upstream"
	logx "github.com/example/storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(cfg.Environment)

	var (
		source    catalog.Source
		submitter httpapi.OrderSubmitter
	)

	if cfg.UpstreamURL != "" {
		client := upstream.NewClient(cfg.UpstreamURL, cfg.RequestTimeout)
		source = client
		submitter = client
		logx.Info().Str("url", cfg.UpstreamURL).Msg("catalog served from upstream API")
	} else {
		repo, err := repository.NewRepository(cfg.DBPath)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to open catalog database")
		}
		defer repo.Close()

		if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
			logx.Fatal().Err(err).Msg("failed to run migrations")
		}
		source = repo
		submitter = repo
		logx.Info().Str("path", cfg.DBPath).Msg("catalog served from embedded database")
	}

	var catalogCache cache.CatalogCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logx.Fatal().Err(err).Msg("redis connection failed")
		}
		catalogCache = cache.NewRedisCache(redisClient, cfg.CacheTTL)
		logx.Info().Str("addr", cfg.RedisAddr).Msg("catalog cache enabled")
	}

	catalogService := catalog.NewService(source, catalogCache)

	carts := cart.NewRegistry(cfg.SessionTTL)
	defer carts.Close()

	router := httpapi.NewRouter(httpapi.Handlers{
		Products:   httpapi.NewProductHandler(catalogService, cfg.RequestTimeout),
		Categories: httpapi.NewCategoryHandler(catalogService, cfg.RequestTimeout),
		Cart:       httpapi.NewCartHandler(carts, catalogService, cfg.RequestTimeout),
		Orders:     httpapi.NewOrderHandler(carts, submitter, cfg.RequestTimeout),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logx.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logx.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logx.Info().Msg("server exited")
}
