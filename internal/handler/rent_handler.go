package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rent-bo-svc/internal/models/response"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/service"
	"rent-bo-svc/pkg/logger"
	"rent-bo-svc/pkg/utils"
)

// RentHandler handles rent record HTTP requests
type RentHandler struct {
	rentService service.RentService
	logger      *logger.Logger
	now         func() time.Time
}

// NewRentHandler creates a new rent handler
func NewRentHandler(rentService service.RentService, logger *logger.Logger) *RentHandler {
	return &RentHandler{
		rentService: rentService,
		logger:      logger,
		now:         time.Now,
	}
}

// GetRents handles GET /api/v1/rents
// @Summary Get combined rent records
// @Description Rent records of a billing period, each paired with the tenant's previous cycle. Defaults to the current month and year.
// @Tags rents
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} utils.APIResponse{data=response.RentListResponse} "Combined rent records"
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents [get]
func (h *RentHandler) GetRents(c *gin.Context) {
	now := h.now()
	month, year, err := periodQuery(c, int(now.Month()), now.Year())
	if err != nil {
		utils.BadRequestResponse(c, "Invalid period", err)
		return
	}

	items, err := h.rentService.GetCombinedRents(c.Request.Context(), month, year)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"month": month,
			"year":  year,
		}).Error("Failed to get rent records")
		respondServiceError(c, "Failed to retrieve rent records", err)
		return
	}

	utils.SuccessResponse(c, "Rent records retrieved successfully", response.RentListResponse{
		Month:    month,
		Year:     year,
		Combined: items,
	})
}

// UpdateRentStatus handles PATCH /api/v1/rents/:id/status
// @Summary Update rent status
// @Description Set a rent record to paid, pending or overdue. Owner and manager only.
// @Tags rents
// @Accept json
// @Produce json
// @Param id path string true "Rent record id"
// @Param request body response.UpdateRentStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse "Status updated"
// @Failure 400 {object} utils.APIResponse "Invalid status"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Rent record not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents/{id}/status [patch]
func (h *RentHandler) UpdateRentStatus(c *gin.Context) {
	id := c.Param("id")

	var req response.UpdateRentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}
	status, err := rentview.ParseStatus(req.Status)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid status", err)
		return
	}

	if err := h.rentService.UpdateRentStatus(c.Request.Context(), id, status); err != nil {
		respondServiceError(c, "Failed to update rent status", err)
		return
	}

	utils.SuccessResponse(c, "Rent status updated successfully", gin.H{"id": id, "status": status})
}

// DeleteRent handles DELETE /api/v1/rents/:id
// @Summary Delete rent record
// @Description Owner and manager only.
// @Tags rents
// @Produce json
// @Param id path string true "Rent record id"
// @Success 200 {object} utils.APIResponse "Rent record deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Rent record not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents/{id} [delete]
func (h *RentHandler) DeleteRent(c *gin.Context) {
	id := c.Param("id")
	if err := h.rentService.DeleteRent(c.Request.Context(), id); err != nil {
		respondServiceError(c, "Failed to delete rent record", err)
		return
	}
	utils.SuccessResponse(c, "Rent record deleted successfully", gin.H{"id": id})
}

// DownloadReceipt handles GET /api/v1/rents/:id/receipt
// @Summary Download rent receipt
// @Description PDF receipt of one rent record; year and month must match the billing period or the month the record falls due in.
// @Tags rents
// @Produce application/pdf
// @Param id path string true "Rent record id"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {file} file "PDF receipt"
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Failure 404 {object} utils.APIResponse "Rent record not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents/{id}/receipt [get]
func (h *RentHandler) DownloadReceipt(c *gin.Context) {
	id := c.Param("id")
	now := h.now()
	month, year, err := periodQuery(c, int(now.Month()), now.Year())
	if err != nil {
		utils.BadRequestResponse(c, "Invalid period", err)
		return
	}

	pdf, err := h.rentService.GenerateReceipt(c.Request.Context(), id, year, month)
	if err != nil {
		h.logger.WithError(err).WithField("rent_id", id).Error("Failed to generate receipt")
		respondServiceError(c, "Failed to generate receipt", err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(rentview.ReceiptFilename(id, now)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportRents handles GET /api/v1/rents/export
// @Summary Export rent records to Excel
// @Tags rents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {file} file "Excel workbook"
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents/export [get]
func (h *RentHandler) ExportRents(c *gin.Context) {
	now := h.now()
	month, year, err := periodQuery(c, int(now.Month()), now.Year())
	if err != nil {
		utils.BadRequestResponse(c, "Invalid period", err)
		return
	}

	content, filename, err := h.rentService.ExportRentsToExcel(c.Request.Context(), month, year)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"month": month,
			"year":  year,
		}).Error("Failed to export rent records")
		respondServiceError(c, "Failed to export rent records", err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(filename))
	c.Header("Content-Length", fmt.Sprint(len(content)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// ExportRentsPDF handles GET /api/v1/rents/export/pdf
// @Summary Download the rent report of a period as PDF
// @Tags rents
// @Produce application/pdf
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rents/export/pdf [get]
func (h *RentHandler) ExportRentsPDF(c *gin.Context) {
	now := h.now()
	month, year, err := periodQuery(c, int(now.Month()), now.Year())
	if err != nil {
		utils.BadRequestResponse(c, "Invalid period", err)
		return
	}

	content, filename, err := h.rentService.ExportRentsToPDF(c.Request.Context(), month, year)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"month": month,
			"year":  year,
		}).Error("Failed to export rent report")
		respondServiceError(c, "Failed to export rent report", err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(filename))
	c.Header("Content-Length", fmt.Sprint(len(content)))
	c.Data(http.StatusOK, "application/pdf", content)
}
