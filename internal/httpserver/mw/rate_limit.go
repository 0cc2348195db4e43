package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/wander/internal/utils"
)

// RateLimitConfig is a token bucket per client IP.
type RateLimitConfig struct {
	Burst      int           // bucket capacity
	PerMinute  int           // tokens refilled per minute
	MaxClients int           // sweep idle buckets early past this many (0 = no cap)
	SweepEvery time.Duration // default 1m
	IdleTTL    time.Duration // default 15m
	TrustProxy bool
	Now        func() time.Time // tests
}

type bucket struct {
	tokens   float64
	last     time.Time
	lastSeen time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	rate      float64 // tokens per second
	capacity  float64
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.PerMinute = max(cfg.PerMinute, 1)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &limiter{
		cfg:       cfg,
		rate:      float64(cfg.PerMinute) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket, 256),
		lastSweep: cfg.Now(),
	}
}

// take consumes one token for key. It returns the tokens left, or when
// denied, the seconds until one is available.
func (l *limiter) take(key string) (ok bool, remaining, retryAfter int) {
	now := l.cfg.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepEvery ||
		(l.cfg.MaxClients > 0 && len(l.buckets) >= l.cfg.MaxClients) {
		l.sweepLocked(now)
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.last = now
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	return false, 0, max(1, int(math.Ceil((1-b.tokens)/l.rate)))
}

func (l *limiter) sweepLocked(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

// RateLimit answers 429 with Retry-After once a client has spent its bucket.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := l.take(utils.ClientIP(r, l.cfg.TrustProxy))

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
