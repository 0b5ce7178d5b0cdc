package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultClientName  = "ecommerce-api"
)

// Config describes the Redis instance holding the catalog cache.
type Config struct {
	Addr        string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
	CacheTTL    time.Duration
}

// OpenCatalogCache dials Redis, confirms it answers and returns a cache bound
// to the catalog key space.
func OpenCatalogCache(ctx context.Context, cfg Config) (*CatalogCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: address is required")
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	name := cfg.ClientName
	if name == "" {
		name = defaultClientName
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  name,
		DialTimeout: timeout,
	})

	cache := NewCatalogCache(client, cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return cache, nil
}

// Ping backs the readiness check.
func (c *CatalogCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *CatalogCache) Close() error {
	return c.client.Close()
}
