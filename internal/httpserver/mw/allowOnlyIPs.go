package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/utils"
)

// AllowOnlyCIDRS restricts a route to the given IPs/CIDRs. An empty list
// disables the check. trustProxy makes the client IP come from forwarding
// headers, only enable it behind a proxy you control.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("request rejected by ip filter",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
