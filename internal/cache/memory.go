package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	data      []byte
	expiresAt time.Time // zero => never
}

func (it memoryItem) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !now.Before(it.expiresAt)
}

// Memory is a process-local cache. Expired entries are invisible to Get and
// reclaimed by Sweep.
type Memory struct {
	mu         sync.RWMutex
	items      map[string]memoryItem
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an in-memory cache holding at most maxEntries
// (0 = unbounded).
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		items:      make(map[string]memoryItem),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string, dst any) Lookup {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || item.expired(c.now()) {
		return Lookup{}
	}
	if err := decode(item.data, dst); err != nil {
		return Lookup{Err: err}
	}
	return Lookup{Hit: true}
}

func (c *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	now := c.now()
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		if c.sweepLocked(now) == 0 {
			c.evictOneLocked()
		}
	}
	c.items[key] = item
	return nil
}

func (c *Memory) Flush(context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]memoryItem)
	c.mu.Unlock()
	return nil
}

func (c *Memory) Ping(context.Context) error { return nil }

func (c *Memory) Backend() string { return "memory" }

// Sweep drops expired entries and returns how many were removed.
func (c *Memory) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

// Len returns the number of stored entries, expired ones included.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Memory) sweepLocked(now time.Time) int {
	removed := 0
	for k, it := range c.items {
		if it.expired(now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// evictOneLocked drops the entry closest to expiry.
func (c *Memory) evictOneLocked() {
	var (
		victim string
		first  = true
		soon   time.Time
	)
	for k, it := range c.items {
		if first || (!it.expiresAt.IsZero() && (soon.IsZero() || it.expiresAt.Before(soon))) {
			victim, soon, first = k, it.expiresAt, false
		}
	}
	if !first {
		delete(c.items, victim)
	}
}
