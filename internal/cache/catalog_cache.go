package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ansamedicdent/catalog_api/internal/models"
)

const remoteSnapshotKey = "catalog:remote_products"

// remoteLister is the slice of the remote source this decorator needs.
type remoteLister interface {
	ListProducts(ctx context.Context) ([]models.RemoteProduct, error)
}

// CachedRemoteSource decorates the remote catalog source with a TTL snapshot
// cache in redis. This is the explicit opt-in cache policy; with it disabled
// the catalog fetches fresh on every call. Redis faults fall through to the
// underlying source, so catalog availability never depends on redis.
type CachedRemoteSource struct {
	redis  *RedisClient
	source remoteLister
	ttl    time.Duration
}

// NewCachedRemoteSource wraps source with a snapshot cache of the given TTL.
func NewCachedRemoteSource(redis *RedisClient, source remoteLister, ttl time.Duration) *CachedRemoteSource {
	return &CachedRemoteSource{redis: redis, source: source, ttl: ttl}
}

// ListProducts returns the cached snapshot when present, otherwise fetches
// from the underlying source and stores the result.
func (c *CachedRemoteSource) ListProducts(ctx context.Context) ([]models.RemoteProduct, error) {
	if raw, err := c.redis.Get(ctx, remoteSnapshotKey); err == nil {
		var rows []models.RemoteProduct
		uerr := json.Unmarshal([]byte(raw), &rows)
		if uerr == nil {
			return rows, nil
		}
		log.Warn().Err(uerr).Msg("Corrupt remote catalog snapshot, refetching")
	}
	return c.Refresh(ctx)
}

// Refresh fetches a fresh snapshot from the underlying source and stores it.
// The background refresh worker calls this on an interval to keep the
// snapshot warm.
func (c *CachedRemoteSource) Refresh(ctx context.Context) ([]models.RemoteProduct, error) {
	rows, err := c.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(rows); err == nil {
		if err := c.redis.Set(ctx, remoteSnapshotKey, string(raw), c.ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to store remote catalog snapshot")
		}
	}
	return rows, nil
}

// Invalidate drops the snapshot so the next read hits the store.
func (c *CachedRemoteSource) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, remoteSnapshotKey)
}
