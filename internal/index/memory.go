package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/wander/internal/gazetteer"
)

// MemoryIndex holds the current gazetteer snapshot. Reloads swap the whole
// snapshot, so readers never observe a partially built dataset.
type MemoryIndex struct {
	mu         sync.RWMutex
	dataset    *gazetteer.Dataset
	source     string
	lastReload time.Time
}

// NewMemoryIndex creates an index with an empty snapshot
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{dataset: &gazetteer.Dataset{}}
}

// Update publishes a new snapshot. ds must not be modified afterwards.
func (idx *MemoryIndex) Update(ds *gazetteer.Dataset, source string) {
	if ds == nil {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.dataset = ds
	idx.source = source
	idx.lastReload = time.Now()
}

// Dataset returns the current snapshot, never nil
func (idx *MemoryIndex) Dataset() *gazetteer.Dataset {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.dataset
}

// Counts returns entries per dataset of the current snapshot
func (idx *MemoryIndex) Counts() map[string]int {
	return idx.Dataset().Counts()
}

// Count returns the number of searchable places
func (idx *MemoryIndex) Count() int {
	return idx.Dataset().Len()
}

// Loaded reports whether a non-empty snapshot has been published
func (idx *MemoryIndex) Loaded() bool {
	return idx.Count() > 0
}

// Source names where the current snapshot came from
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last successful reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
