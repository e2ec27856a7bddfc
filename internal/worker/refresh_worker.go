package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ansamedicdent/catalog_api/internal/cache"
)

// RefreshWorker periodically re-warms the remote catalog snapshot so TTL
// expiry rarely forces a request-path fetch. It only runs when the snapshot
// cache is enabled.
type RefreshWorker struct {
	source   *cache.CachedRemoteSource
	interval time.Duration
}

// NewRefreshWorker constructs a RefreshWorker.
func NewRefreshWorker(source *cache.CachedRemoteSource, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{source: source, interval: interval}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog refresh worker stopped")
			return
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	start := time.Now()
	rows, err := w.source.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh remote catalog snapshot")
		return
	}
	log.Info().Int("products", len(rows)).Dur("duration", time.Since(start)).Msg("Remote catalog snapshot refreshed")
}
