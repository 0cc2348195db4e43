package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/wander/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

// registerAPI mounts the public search endpoints behind one shared rate limiter.
func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateLimitBurst,
			PerMinute:  d.RateLimitPerMinute,
			MaxClients: 10_000,
			TrustProxy: d.TrustProxy,
		}))

		api.Get("/suggestions", handlers.Suggestions(d))
		api.Get("/cities", handlers.Cities(d))
		api.Get("/districts", handlers.Districts(d))
		api.Get("/transfers/locations", handlers.TransferLocations(d))
	})
}
