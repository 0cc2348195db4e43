package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/wander/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// registerOps mounts operator endpoints, restricted to the allowed CIDRs.
func registerOps(r chi.Router, d deps.Deps) {
	cidrs := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	ops := r.With(cidrs, mw.EnforceHost(d.AllowedHosts, d.Logger))
	ops.Get("/infra", handlers.Infra(d))
	ops.Post("/reload", handlers.Reload(d))

	// scrapers address the pod directly, no Host check
	r.With(cidrs).Method(http.MethodGet, "/metrics", d.Metrics.Handler())
}
