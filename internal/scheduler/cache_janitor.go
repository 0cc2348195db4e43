package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/wander/internal/logger"
)

// DefaultJanitorInterval is used when no interval is configured
const DefaultJanitorInterval = 5 * time.Minute

// Sweeper drops expired entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
	Len() int
}

// CacheJanitor periodically evicts expired entries from the in-memory cache.
// Redis expires keys on its own and needs no janitor.
type CacheJanitor struct {
	cache    Sweeper
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheJanitor creates a new cache janitor
func NewCacheJanitor(cache Sweeper, log logger.Logger, interval time.Duration) *CacheJanitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}

	return &CacheJanitor{
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (cj *CacheJanitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(cj.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cj.Collect(ctx)
			case <-cj.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor
func (cj *CacheJanitor) Stop() {
	close(cj.stopCh)
}

// Collect runs one sweep and returns the number of evicted entries
func (cj *CacheJanitor) Collect(_ context.Context) int {
	removed := cj.cache.Sweep()

	if removed > 0 {
		cj.logger.Info("cache sweep completed",
			logger.Int("evicted", removed),
			logger.Int("remaining", cj.cache.Len()))
	} else {
		cj.logger.Debug("no expired cache entries")
	}

	return removed
}
