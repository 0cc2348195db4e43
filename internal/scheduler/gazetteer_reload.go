package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/wander/internal/gazetteer"
	"github.com/MrSnakeDoc/wander/internal/index"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/metrics"
)

// Flusher drops cached responses built from a previous snapshot.
type Flusher interface {
	Flush(ctx context.Context) error
}

// GazetteerReloader handles periodic and manual reloading of the gazetteer
type GazetteerReloader struct {
	source        gazetteer.Source
	index         *index.MemoryIndex
	cache         Flusher
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewGazetteerReloader creates a new gazetteer reloader. cache and m may be nil.
func NewGazetteerReloader(
	source gazetteer.Source,
	idx *index.MemoryIndex,
	cache Flusher,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *GazetteerReloader {
	return &GazetteerReloader{
		source:        source,
		index:         idx,
		cache:         cache,
		metrics:       m,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the gazetteer once, then keeps reloading it in the background.
// A failed initial load is fatal: there is nothing to serve without it.
func (gr *GazetteerReloader) Start(ctx context.Context) error {
	if err := gr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	// interval <= 0 disables periodic reloads, manual ones still work
	var ticker *time.Ticker
	var tick <-chan time.Time
	if gr.interval > 0 {
		ticker = time.NewTicker(gr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := gr.Reload(ctx); err != nil {
					gr.logger.Error("failed to reload gazetteer", logger.Error(err))
				}
			case <-gr.manualTrigger:
				gr.logger.Info("manual reload triggered")
				if err := gr.Reload(ctx); err != nil {
					gr.logger.Error("failed to reload gazetteer", logger.Error(err))
				}
			case <-gr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (gr *GazetteerReloader) Stop() {
	close(gr.stopCh)
}

// Reload loads a fresh snapshot and publishes it. On failure the previous
// snapshot stays in place.
func (gr *GazetteerReloader) Reload(ctx context.Context) error {
	gr.logger.Info("reloading gazetteer", logger.String("source", gr.source.Name()))

	ds, err := gr.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gazetteer from %s: %w", gr.source.Name(), err)
	}

	replacing := gr.index.Loaded()
	gr.index.Update(ds, gr.source.Name())
	gr.metrics.SetGazetteer(ds.Counts())

	counts := ds.Counts()
	gr.logger.Info("gazetteer loaded",
		logger.String("source", gr.source.Name()),
		logger.Int("cities", counts[gazetteer.KindCities]),
		logger.Int("districts", counts[gazetteer.KindDistricts]),
		logger.Int("airports", counts[gazetteer.KindAirports]),
		logger.Int("landmarks", counts[gazetteer.KindLandmarks]))

	// cached responses were ranked against the old snapshot (best effort)
	if replacing && gr.cache != nil {
		if err := gr.cache.Flush(ctx); err != nil {
			gr.logger.Warn("failed to flush response cache", logger.Error(err))
		} else {
			gr.logger.Info("response cache flushed")
		}
	}

	return nil
}
