package admin

import (
	"strconv"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats cached back-office figures; force_refresh bypasses the cache
func (h *Handler) GetDashboardStats(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force_refresh", "false"))
	stats, err := h.DashboardService.GetStats(c.Request.Context(), force)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetDashboardDrivers per-driver order and COD totals
func (h *Handler) GetDashboardDrivers(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force_refresh", "false"))
	rows, err := h.DashboardService.DriverSummaries(c.Request.Context(), force)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, rows)
}
