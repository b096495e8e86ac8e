// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health returns the /healthz handler. A nil store skips the reachability check.
// Responses are never cached.
func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		status, body := http.StatusOK, gin.H{"status": "ok", "store": "ok"}
		if store == nil {
			body["store"] = "skipped"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				slog.Error("health check: store unreachable", "error", err)
				status, body = http.StatusServiceUnavailable, gin.H{"status": "unavailable", "store": "unreachable"}
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
