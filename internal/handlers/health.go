package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports whether the database answers a ping.
func Health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			log.Println("[HEALTH] [ERROR] database ping failed:", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	}
}
