package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/metrics"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

const (
	cacheKeyCategories  = "catalog:categories"
	cacheKeyAllProducts = "catalog:products:all"
)

func productsCacheKey(categoryID *uint) string {
	if categoryID == nil {
		return cacheKeyAllProducts
	}
	return fmt.Sprintf("catalog:products:category:%d", *categoryID)
}

// cacheGuard wraps a CatalogCache so cache failures are logged and counted
// but never surface to callers.
type cacheGuard struct {
	cache ports.CatalogCache
	log   zerolog.Logger
}

func newCacheGuard(cache ports.CatalogCache, log zerolog.Logger) cacheGuard {
	return cacheGuard{cache: cache, log: log}
}

func (g cacheGuard) get(ctx context.Context, key string, dst any) bool {
	if g.cache == nil {
		return false
	}
	found, err := g.cache.Get(ctx, key, dst)
	switch {
	case err != nil:
		metrics.CatalogCacheRequestsTotal.WithLabelValues("error").Inc()
		g.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		return false
	case found:
		metrics.CatalogCacheRequestsTotal.WithLabelValues("hit").Inc()
		return true
	default:
		metrics.CatalogCacheRequestsTotal.WithLabelValues("miss").Inc()
		return false
	}
}

func (g cacheGuard) set(ctx context.Context, key string, value any) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, key, value); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

func (g cacheGuard) invalidate(ctx context.Context) {
	if g.cache == nil {
		return
	}
	if err := g.cache.InvalidateAll(ctx); err != nil {
		g.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
