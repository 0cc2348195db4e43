package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
)

const cachePingTimeout = 2 * time.Second

type componentStatus struct {
	OK         bool           `json:"ok"`
	Mode       string         `json:"mode,omitempty"`
	Impact     string         `json:"impact,omitempty"`
	Error      string         `json:"error,omitempty"`
	Places     map[string]int `json:"places,omitempty"`
	Source     string         `json:"source,omitempty"`
	LastReload string         `json:"last_reload,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each component and an overall mode:
// "critical" without a gazetteer, "degraded" when the cache or the provider
// is unavailable, "full" otherwise.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"gazetteer": gazetteerStatus(d),
			"cache":     cacheStatus(r.Context(), d),
			"provider":  providerStatus(d),
		}
		writeJSON(w, d, http.StatusOK, infraResponse{
			Mode:       overallMode(components),
			Components: components,
		})
	}
}

func gazetteerStatus(d deps.Deps) componentStatus {
	lastReload := "never"
	if t := d.MemoryIndex.GetLastReload(); !t.IsZero() {
		lastReload = t.UTC().Format(time.RFC3339)
	}
	return componentStatus{
		OK:         d.MemoryIndex.Loaded(),
		Places:     d.MemoryIndex.Counts(),
		Source:     d.MemoryIndex.Source(),
		LastReload: lastReload,
	}
}

func cacheStatus(ctx context.Context, d deps.Deps) componentStatus {
	if d.Cache == nil || d.Cache.Backend() == "none" {
		return componentStatus{OK: false, Mode: "none", Impact: "every query hits the provider"}
	}

	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()

	if err := d.Cache.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Cache.Backend(),
			Impact: "responses are not cached",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.Cache.Backend()}
}

func providerStatus(d deps.Deps) componentStatus {
	if !d.ProviderEnabled {
		return componentStatus{OK: false, Mode: "disabled", Impact: "local results only"}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}

func overallMode(components map[string]componentStatus) string {
	if !components["gazetteer"].OK {
		return "critical"
	}
	for _, name := range []string{"cache", "provider"} {
		if !components[name].OK {
			return "degraded"
		}
	}
	return "full"
}
