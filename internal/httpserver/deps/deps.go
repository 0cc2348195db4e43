package deps

import (
	"time"

	"github.com/MrSnakeDoc/wander/internal/cache"
	"github.com/MrSnakeDoc/wander/internal/index"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/metrics"
	"github.com/MrSnakeDoc/wander/internal/resolver"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts       []string // Host headers allowed on the public API
	AllowedCIDRS       []string // IPs allowed on ops endpoints (reload, infra, metrics)
	TrustProxy         bool     // resolve client IPs from forwarding headers
	CORSOrigins        []string // browser origins allowed on the API
	RateLimitBurst     int
	RateLimitPerMinute int

	Resolver        *resolver.Resolver
	MemoryIndex     *index.MemoryIndex // current gazetteer snapshot
	Cache           cache.Cache        // response cache, for status only
	ProviderEnabled bool
	Metrics         *metrics.Metrics // nil disables /metrics
	ReloadTrigger   chan struct{}    // manual gazetteer reload, buffered(1)
}
