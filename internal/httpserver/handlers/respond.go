package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/logger"
)

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func cacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
		return
	}
	w.Header().Set("X-Cache", "MISS")
}
