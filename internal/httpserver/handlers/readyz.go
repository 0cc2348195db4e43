package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Places int    `json:"places"`
	Source string `json:"source,omitempty"`
}

// Readyz reports ready once a gazetteer snapshot is loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		resp := readyzResponse{
			Ready:  d.MemoryIndex.Loaded(),
			Places: d.MemoryIndex.Count(),
			Source: d.MemoryIndex.Source(),
		}
		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, resp)
	}
}
