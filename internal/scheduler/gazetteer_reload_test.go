package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/wander/internal/domain"
	"github.com/MrSnakeDoc/wander/internal/gazetteer"
	"github.com/MrSnakeDoc/wander/internal/index"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/metrics"
)

type stubSource struct {
	calls atomic.Int32
	err   error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (*gazetteer.Dataset, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &gazetteer.Dataset{
		Cities: []domain.Suggestion{{ID: "city-paris", Name: "Paris", City: "Paris", Type: domain.PlaceCity}},
	}, nil
}

type countingFlusher struct {
	flushes atomic.Int32
}

func (f *countingFlusher) Flush(context.Context) error {
	f.flushes.Add(1)
	return nil
}

func TestGazetteerReloader_Reload(t *testing.T) {
	src := &stubSource{}
	idx := index.NewMemoryIndex()
	flusher := &countingFlusher{}

	gr := NewGazetteerReloader(src, idx, flusher, metrics.New(), logger.Nop(), 0, make(chan struct{}, 1))

	if err := gr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !idx.Loaded() || idx.Source() != "stub" {
		t.Fatal("Reload did not publish the snapshot")
	}
	if flusher.flushes.Load() != 0 {
		t.Error("initial load must not flush the cache")
	}

	if err := gr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if flusher.flushes.Load() != 1 {
		t.Errorf("flushes = %d, want 1 after replacing a snapshot", flusher.flushes.Load())
	}
}

func TestGazetteerReloader_FailureKeepsSnapshot(t *testing.T) {
	src := &stubSource{}
	idx := index.NewMemoryIndex()
	gr := NewGazetteerReloader(src, idx, nil, nil, logger.Nop(), 0, make(chan struct{}, 1))

	if err := gr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	before := idx.Dataset()

	src.err = errors.New("disk on fire")
	if err := gr.Reload(context.Background()); err == nil {
		t.Fatal("Reload should report the source error")
	}
	if idx.Dataset() != before {
		t.Error("a failed reload must keep the previous snapshot")
	}
}

func TestGazetteerReloader_StartFailsWithoutData(t *testing.T) {
	src := &stubSource{err: errors.New("no data")}
	gr := NewGazetteerReloader(src, index.NewMemoryIndex(), nil, nil, logger.Nop(), time.Hour, make(chan struct{}, 1))

	if err := gr.Start(context.Background()); err == nil {
		t.Fatal("Start should fail when the initial load fails")
	}
}

func TestGazetteerReloader_ManualTrigger(t *testing.T) {
	src := &stubSource{}
	trigger := make(chan struct{}, 1)
	gr := NewGazetteerReloader(src, index.NewMemoryIndex(), nil, nil, logger.Nop(), time.Hour, trigger)

	if err := gr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer gr.Stop()

	trigger <- struct{}{}

	deadline := time.Now().Add(time.Second)
	for src.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source loaded %d times, want 2", got)
	}
}
