package mw

import (
	"net"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/wander/internal/logger"
)

// EnforceHost rejects requests whose Host header is not listed. Patterns
// like "*.example.com" match any subdomain. An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, len(allowedHosts))
	for i, h := range allowedHosts {
		patterns[i] = strings.ToLower(h)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			for _, p := range patterns {
				if matchHost(host, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("request rejected by host filter", logger.String("host", r.Host))
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix)
	}
	return false
}
