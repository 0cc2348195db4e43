package utils

import (
	"io"

	"github.com/MrSnakeDoc/wander/internal/logger"
)

// Close closes c, logging a failure at warn level under what.
// Meant for defer where the error cannot be returned.
func Close(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close "+what, logger.Error(err))
	}
}
