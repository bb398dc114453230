package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Health reports service liveness. Storage reachability degrades the status
// but still answers, so a probe can tell "down" from "degraded".
func Health(service string, db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"service": service,
			"status":  status,
			"time":    time.Now().UTC(),
		})
	}
}
