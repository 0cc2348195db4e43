package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/wander/internal/logger"
)

// Log writes one access line per request. Probe endpoints log at debug.
func Log(log logger.Logger, quiet ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			emit := log.Info
			if _, ok := skip[r.URL.Path]; ok {
				emit = log.Debug
			}
			emit("http_request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.String("query", r.URL.Query().Get("q")),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", r.RemoteAddr),
				logger.String("cache", ww.Header().Get("X-Cache")),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
