package handler

import (
	"rent-bo-svc/internal/service"
	"rent-bo-svc/pkg/logger"
	"rent-bo-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetRentSummary handles GET /api/v1/dashboard/rent-summary
// @Summary Get rent summary cards
// @Description Totals due, paid and pending for the current month plus total deposits. Served from cache until the next refresh.
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.RentSummaryResponse} "Rent summary"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/rent-summary [get]
func (h *DashboardHandler) GetRentSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetRentSummary(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get rent summary")
		utils.InternalServerErrorResponse(c, "Failed to retrieve rent summary", err)
		return
	}

	utils.SuccessResponse(c, "Rent summary retrieved successfully", summary)
}

// RefreshRentSummary handles POST /api/v1/dashboard/rent-summary/refresh
// @Summary Recompute rent summary cards
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.RentSummaryResponse} "Refreshed rent summary"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/rent-summary/refresh [post]
func (h *DashboardHandler) RefreshRentSummary(c *gin.Context) {
	summary, err := h.dashboardService.RefreshRentSummary(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to refresh rent summary")
		utils.InternalServerErrorResponse(c, "Failed to refresh rent summary", err)
		return
	}

	utils.SuccessResponse(c, "Rent summary refreshed successfully", summary)
}
