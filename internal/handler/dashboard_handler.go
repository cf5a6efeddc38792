package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
)

// DashboardHandler serves the admin dashboard snapshot.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/admin/dashboard
// Returns counts, money totals and the recent notification feed. Served
// from a short-lived cache, so the snapshot can lag writes by a few
// seconds.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}
