package handler

import (
	"github.com/gin-gonic/gin"

	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/service"
	"rent-bo-svc/pkg/logger"
	"rent-bo-svc/pkg/utils"
)

// TenantHandler handles tenant HTTP requests
type TenantHandler struct {
	tenantService service.TenantService
	logger        *logger.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService service.TenantService, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		logger:        logger,
	}
}

// PatchTenant handles PATCH /api/v1/tenants/:id
// @Summary Update tenant name and charges
// @Description Saves the name, rent, maintenance, cgst, sgst, tds and total edited in the rent view. Owner and manager only.
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant id"
// @Param request body rentview.TenantPatch true "Tenant patch"
// @Success 200 {object} utils.APIResponse "Tenant updated"
// @Failure 400 {object} utils.APIResponse "Invalid patch"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/tenants/{id} [patch]
func (h *TenantHandler) PatchTenant(c *gin.Context) {
	id := c.Param("id")

	var patch rentview.TenantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.tenantService.PatchTenant(c.Request.Context(), id, patch); err != nil {
		respondServiceError(c, "Failed to update tenant", err)
		return
	}

	utils.SuccessResponse(c, "Tenant updated successfully", gin.H{"id": id})
}
