// Package cache stores resolved responses behind a small key/value interface.
//
// Reads return a Lookup instead of an error so that callers branch explicitly
// on hit, miss and failure; a failed read must be treated as a miss.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by backends that cannot serve requests.
var ErrUnavailable = errors.New("cache unavailable")

// Lookup is the outcome of a cache read.
type Lookup struct {
	Hit bool
	Err error // set when the backend failed; Hit is false
}

// Result labels the lookup for logs and metrics.
func (l Lookup) Result() string {
	switch {
	case l.Err != nil:
		return "error"
	case l.Hit:
		return "hit"
	default:
		return "miss"
	}
}

// Cache is a TTL key/value store for response payloads.
type Cache interface {
	// Get decodes the value stored at key into dst.
	Get(ctx context.Context, key string, dst any) Lookup
	// Set stores value at key for ttl. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Flush drops every entry owned by this cache.
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	// Backend names the implementation ("redis", "memory", "none").
	Backend() string
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) Lookup               { return Lookup{} }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Flush(context.Context) error                           { return nil }
func (Noop) Ping(context.Context) error                            { return nil }
func (Noop) Backend() string                                       { return "none" }
