package mw

import (
	"net/http"
	"slices"
	"strings"
)

// CORS lets browsers call the read-only API from the listed origins. "*"
// allows any origin. Preflight requests are answered here with 204.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			switch {
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case slices.ContainsFunc(origins, func(o string) bool { return strings.EqualFold(o, origin) }):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			default:
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h.Set("Access-Control-Expose-Headers", "X-Cache, X-Request-ID, Retry-After")
			next.ServeHTTP(w, r)
		})
	}
}
