package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload queues a gazetteer reload. The trigger channel holds at most one
// pending request, a second one while it is pending gets 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual gazetteer reload triggered", logger.String("remote_ip", ip))
			writeJSON(w, d, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "reload triggered",
			})
		default:
			d.Logger.Warn("gazetteer reload already pending", logger.String("remote_ip", ip))
			writeJSON(w, d, http.StatusTooManyRequests, reloadResponse{
				Message: "reload already pending, please wait",
			})
		}
	}
}
