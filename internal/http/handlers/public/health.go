package public

import (
	"context"
	"time"

	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/models"

	"github.com/gin-gonic/gin"
)

// Health reports database and redis reachability
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "disabled"}
	healthy := true
	if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "down"
		healthy = false
	}
	if cache.Enabled() {
		status["redis"] = "ok"
		if err := cache.Ping(ctx); err != nil {
			status["redis"] = "down"
			healthy = false
		}
	}
	if !healthy {
		response.ErrorWithData(c, response.CodeInternal, "unhealthy", status)
		return
	}
	response.Success(c, status)
}
