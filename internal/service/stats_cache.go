package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

const statsFlightKey = "stats"

// statsSnapshot is a computed Stats value tagged with the freshness token the
// store reported when the collection was loaded.
type statsSnapshot struct {
	stats domain.Stats
	token store.FreshnessToken
}

// StatsCache serves collection statistics, recomputing them only when the
// store's freshness token has moved.
//
// Concurrent callers that observe a stale snapshot share one recomputation:
// the store is loaded at most once per staleness episode, and every waiter
// receives the same result or the same error. A failed recomputation leaves
// the cache empty so the next call retries.
type StatsCache struct {
	store  store.ItemStore
	logger *slog.Logger
	group  singleflight.Group

	mu       sync.Mutex
	snapshot *statsSnapshot
}

// NewStatsCache creates an empty cache over itemStore.
func NewStatsCache(itemStore store.ItemStore, logger *slog.Logger) (*StatsCache, error) {
	if itemStore == nil {
		return nil, &ServiceError{
			Operation: "create_stats_cache",
			Message:   "itemStore cannot be nil",
			Err:       ErrNilDependency,
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsCache{
		store:  itemStore,
		logger: logger.With("component", "stats_cache"),
	}, nil
}

// GetStats returns statistics for the current collection.
//
// When the cached snapshot matches the store's freshness token only the token
// is consulted. Otherwise the collection is reloaded. The reload runs detached
// from ctx: a caller whose context ends stops waiting and gets ctx.Err(), while
// the reload completes for everyone else.
func (c *StatsCache) GetStats(ctx context.Context) (domain.Stats, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	token, err := c.store.LastModified(ctx)
	if err != nil {
		c.Invalidate()
		return domain.Stats{}, NewServiceError("get_stats", "failed to check freshness", err)
	}

	if stats, ok := c.cached(token); ok {
		log.Debug("serving cached stats", "total", stats.Total)
		return stats, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(statsFlightKey, func() (interface{}, error) {
		return c.recompute(flightCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.Stats{}, res.Err
		}
		return res.Val.(domain.Stats), nil
	case <-ctx.Done():
		log.Debug("caller stopped waiting for stats recomputation", "error", ctx.Err())
		return domain.Stats{}, ctx.Err()
	}
}

// Warm brings the snapshot up to date, sharing any recomputation already in
// flight.
func (c *StatsCache) Warm(ctx context.Context) error {
	_, err := c.GetStats(ctx)
	return err
}

// Invalidate discards the snapshot. The next GetStats reloads the collection.
func (c *StatsCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

// cached returns the snapshot's stats if it was computed at token.
func (c *StatsCache) cached(token store.FreshnessToken) (domain.Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil || !c.snapshot.token.Equal(token) {
		return domain.Stats{}, false
	}
	return c.snapshot.stats, true
}

// recompute runs inside the flight. It re-reads the token first so that a
// caller arriving just after a previous flight finished reuses its result
// instead of loading again.
func (c *StatsCache) recompute(ctx context.Context) (domain.Stats, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	token, err := c.store.LastModified(ctx)
	if err != nil {
		c.Invalidate()
		return domain.Stats{}, NewServiceError("get_stats", "failed to check freshness", err)
	}
	if stats, ok := c.cached(token); ok {
		return stats, nil
	}

	items, err := c.store.Load(ctx)
	if err != nil {
		c.Invalidate()
		log.Error("stats recomputation failed", "error", err)
		return domain.Stats{}, NewServiceError("get_stats", "failed to load items", err)
	}

	stats := domain.ComputeStats(items)

	c.mu.Lock()
	c.snapshot = &statsSnapshot{stats: stats, token: token}
	c.mu.Unlock()

	log.Debug("stats recomputed",
		"total", stats.Total,
		"average_price", stats.AveragePrice)

	return stats, nil
}
