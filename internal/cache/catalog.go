package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trustmarket/trustmarket/internal/domain"
)

const snapshotKey = "catalog:snapshot"

// CatalogCache keeps the full catalog snapshot in Redis so query requests
// don't hit the database on every call. Cache failures are soft: callers fall
// back to the repository.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogCache creates a Redis-backed catalog snapshot cache.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached snapshot, or (nil, false) on a miss or any cache
// error.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Product, bool) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "catalog cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry corrupt", slog.String("error", err.Error()))
		return nil, false
	}

	return products, true
}

// Set stores the snapshot with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, products []domain.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached snapshot.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}
