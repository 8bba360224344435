package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-bo-svc/internal/middleware"
	"rent-bo-svc/internal/rentapi"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/session"
	"rent-bo-svc/pkg/logger"
	"rent-bo-svc/pkg/utils"
)

// ValueRequest carries a single filter value
type ValueRequest struct {
	Value string `json:"value" example:"2025-03"`
}

// PageRequest selects a page
type PageRequest struct {
	Page int `json:"page" binding:"required,min=1" example:"2"`
}

// RowsPerPageRequest selects the page size
type RowsPerPageRequest struct {
	RowsPerPage int `json:"rows_per_page" binding:"required" example:"10"`
}

// RowDropdownRequest is a click on a row's status badge
type RowDropdownRequest struct {
	RowID       string `json:"row_id" binding:"required"`
	Kind        string `json:"kind" binding:"required" example:"current"`
	AnchorID    string `json:"anchor_id"`
	AnchorWidth int    `json:"anchor_width"`
}

// FilterDropdownRequest toggles a filter bar dropdown
type FilterDropdownRequest struct {
	Kind string `json:"kind" binding:"required" example:"month"`
}

// ClickOutsideRequest is a pointer press somewhere on the screen
type ClickOutsideRequest struct {
	Region string `json:"region" example:"none"`
	RowID  string `json:"row_id"`
}

// ChangeStatusRequest selects an option of a row status dropdown
type ChangeStatusRequest struct {
	Kind   string `json:"kind" binding:"required" example:"current"`
	Status string `json:"status" binding:"required" example:"paid"`
}

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string        `json:"session_id"`
	View      rentview.View `json:"view"`
}

// ScreenHandler drives rent screen view sessions
type ScreenHandler struct {
	sessions *session.Store
	logger   *logger.Logger
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(sessions *session.Store, logger *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSession handles POST /api/v1/rent-screen/sessions
// @Summary Mount a rent screen
// @Description Creates a view session and fetches the current month. A failed fetch shows up as a notification.
// @Tags rent-screen
// @Produce json
// @Success 201 {object} utils.APIResponse{data=SessionResponse} "Session created"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/rent-screen/sessions [post]
func (h *ScreenHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create(h.ctx(c), c.GetString(middleware.ContextUserID))
	utils.CreatedResponse(c, "Rent screen session created", SessionResponse{
		SessionID: sess.ID,
		View:      sess.Screen.View(),
	})
}

// ListSessions handles GET /api/v1/rent-screen/sessions
// @Summary List the caller's rent screens
// @Tags rent-screen
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]session.Summary} "Open sessions"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/rent-screen/sessions [get]
func (h *ScreenHandler) ListSessions(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)
	items, total := h.sessions.List(c.GetString(middleware.ContextUserID), page, limit)
	utils.PaginatedSuccessResponse(c, "Sessions retrieved successfully", items, page, limit, total)
}

// GetView handles GET /api/v1/rent-screen/sessions/:sid
// @Summary Get the current view
// @Description Returns the reconciled view and drains pending notifications.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Current view"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid} [get]
func (h *ScreenHandler) GetView(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, sess, "View retrieved", nil)
}

// DeleteSession handles DELETE /api/v1/rent-screen/sessions/:sid
// @Summary Tear a rent screen down
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse "Session closed"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid} [delete]
func (h *ScreenHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("sid"), c.GetString(middleware.ContextUserID)); err != nil {
		utils.NotFoundResponse(c, "Session not found")
		return
	}
	utils.SuccessResponse(c, "Session closed", nil)
}

// SetSearch handles PUT /api/v1/rent-screen/sessions/:sid/filters/search
// @Summary Set the tenant name search
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body ValueRequest true "Search term"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters/search [put]
func (h *ScreenHandler) SetSearch(c *gin.Context) {
	h.withValue(c, "Search updated", func(_ context.Context, s *rentview.Screen, v string) error {
		return s.SetSearch(v)
	})
}

// ResetSearch handles DELETE /api/v1/rent-screen/sessions/:sid/filters/search
// @Summary Clear the search term
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters/search [delete]
func (h *ScreenHandler) ResetSearch(c *gin.Context) {
	h.withScreen(c, "Search cleared", func(_ context.Context, s *rentview.Screen) error {
		return s.ResetSearch()
	})
}

// SetStatusFilter handles PUT /api/v1/rent-screen/sessions/:sid/filters/status
// @Summary Set the status filter
// @Description One of "All Status", paid, pending, overdue.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body ValueRequest true "Status filter"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid status filter"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters/status [put]
func (h *ScreenHandler) SetStatusFilter(c *gin.Context) {
	h.withValue(c, "Status filter updated", func(_ context.Context, s *rentview.Screen, v string) error {
		return s.SetStatusFilter(v)
	})
}

// SetMonthFilter handles PUT /api/v1/rent-screen/sessions/:sid/filters/month
// @Summary Set the month filter
// @Description "all" or "YYYY-MM". Refetches when the billing period changes.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body ValueRequest true "Month filter"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid month filter"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters/month [put]
func (h *ScreenHandler) SetMonthFilter(c *gin.Context) {
	h.withValue(c, "Month filter updated", func(ctx context.Context, s *rentview.Screen, v string) error {
		return s.SetMonthFilter(ctx, v)
	})
}

// SetYearFilter handles PUT /api/v1/rent-screen/sessions/:sid/filters/year
// @Summary Set the year filter
// @Description Refetches when the billing period changes.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body ValueRequest true "Year filter"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid year filter"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters/year [put]
func (h *ScreenHandler) SetYearFilter(c *gin.Context) {
	h.withValue(c, "Year filter updated", func(ctx context.Context, s *rentview.Screen, v string) error {
		return s.SetYearFilter(ctx, v)
	})
}

// ResetFilters handles DELETE /api/v1/rent-screen/sessions/:sid/filters
// @Summary Reset all filters
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/filters [delete]
func (h *ScreenHandler) ResetFilters(c *gin.Context) {
	h.withScreen(c, "Filters reset", func(ctx context.Context, s *rentview.Screen) error {
		return s.ResetFilters(ctx)
	})
}

// SetPage handles PUT /api/v1/rent-screen/sessions/:sid/page
// @Summary Change page
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body PageRequest true "Page"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid page"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/page [put]
func (h *ScreenHandler) SetPage(c *gin.Context) {
	var req PageRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Page changed", func(_ context.Context, s *rentview.Screen) error {
		return s.SetPage(req.Page)
	})
}

// SetRowsPerPage handles PUT /api/v1/rent-screen/sessions/:sid/rows-per-page
// @Summary Change page size
// @Description One of 5, 10, 15, 20, 25. Returns to the first page.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body RowsPerPageRequest true "Rows per page"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid page size"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/rows-per-page [put]
func (h *ScreenHandler) SetRowsPerPage(c *gin.Context) {
	var req RowsPerPageRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Page size changed", func(_ context.Context, s *rentview.Screen) error {
		return s.SetRowsPerPage(req.RowsPerPage)
	})
}

// OpenRowDropdown handles POST /api/v1/rent-screen/sessions/:sid/overlay/row-dropdown
// @Summary Click a row status badge
// @Description Opens the row's current or previous status dropdown, closing any other row dropdown. Clicking the open badge closes it.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body RowDropdownRequest true "Badge click"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Role not allowed"
// @Failure 409 {object} utils.APIResponse "Status update in progress"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/overlay/row-dropdown [post]
func (h *ScreenHandler) OpenRowDropdown(c *gin.Context) {
	var req RowDropdownRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Dropdown toggled", func(_ context.Context, s *rentview.Screen) error {
		kind, err := rentview.ParseDropdownKind(req.Kind)
		if err != nil {
			return err
		}
		return s.OpenRowDropdown(middleware.RoleFrom(c), rentview.RowDropdown{
			RowID:  req.RowID,
			Kind:   kind,
			Anchor: rentview.Anchor{ElementID: req.AnchorID, Width: req.AnchorWidth},
		})
	})
}

// ToggleFilterDropdown handles POST /api/v1/rent-screen/sessions/:sid/overlay/filter-dropdown
// @Summary Toggle a filter bar dropdown
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body FilterDropdownRequest true "month, year or status"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/overlay/filter-dropdown [post]
func (h *ScreenHandler) ToggleFilterDropdown(c *gin.Context) {
	var req FilterDropdownRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Dropdown toggled", func(_ context.Context, s *rentview.Screen) error {
		kind, err := rentview.ParseFilterDropdown(req.Kind)
		if err != nil {
			return err
		}
		return s.ToggleFilterDropdown(kind)
	})
}

// ClickOutside handles POST /api/v1/rent-screen/sessions/:sid/overlay/click-outside
// @Summary Report a pointer press
// @Description Closes every dropdown whose anchor and panel do not contain the pressed region.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body ClickOutsideRequest true "Pressed region"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid region"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/overlay/click-outside [post]
func (h *ScreenHandler) ClickOutside(c *gin.Context) {
	var req ClickOutsideRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Click handled", func(_ context.Context, s *rentview.Screen) error {
		region, err := rentview.ParseRegion(req.Region, req.RowID)
		if err != nil {
			return err
		}
		return s.ClickOutside(region)
	})
}

// Escape handles POST /api/v1/rent-screen/sessions/:sid/overlay/escape
// @Summary Press Escape
// @Description Closes every open dropdown.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/overlay/escape [post]
func (h *ScreenHandler) Escape(c *gin.Context) {
	h.withScreen(c, "Dropdowns closed", func(_ context.Context, s *rentview.Screen) error {
		return s.Escape()
	})
}

// ChangeStatus handles POST /api/v1/rent-screen/sessions/:sid/rows/:rowId/status
// @Summary Select a status option
// @Description Updates the row's current or previous cycle, then refetches the period and refreshes the summary. Owner and manager only.
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param rowId path string true "Row id (current cycle id)"
// @Param request body ChangeStatusRequest true "Status option"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view; a failed update is reported as a notification"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Role not allowed"
// @Failure 409 {object} utils.APIResponse "Status update in progress"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/rows/{rowId}/status [post]
func (h *ScreenHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, "Status updated", func(ctx context.Context, s *rentview.Screen) error {
		kind, err := rentview.ParseDropdownKind(req.Kind)
		if err != nil {
			return err
		}
		status, err := rentview.ParseStatus(req.Status)
		if err != nil {
			return err
		}
		return s.ChangeStatus(ctx, middleware.RoleFrom(c), kind, c.Param("rowId"), status)
	})
}

// OpenView handles POST /api/v1/rent-screen/sessions/:sid/rows/:rowId/view
// @Summary Open the view modal
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Param rowId path string true "Row id (current cycle id)"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Row not on the current page or a modal is open"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/rows/{rowId}/view [post]
func (h *ScreenHandler) OpenView(c *gin.Context) {
	h.withScreen(c, "Modal opened", func(_ context.Context, s *rentview.Screen) error {
		return s.OpenView(c.Param("rowId"))
	})
}

// BeginEdit handles POST /api/v1/rent-screen/sessions/:sid/modal/edit
// @Summary Switch the view modal to edit mode
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/edit [post]
func (h *ScreenHandler) BeginEdit(c *gin.Context) {
	h.withScreen(c, "Editing", func(_ context.Context, s *rentview.Screen) error {
		return s.BeginEdit()
	})
}

// UpdateDraft handles PUT /api/v1/rent-screen/sessions/:sid/modal/draft
// @Summary Replace the edit draft
// @Tags rent-screen
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param request body rentview.EditableRentData true "Draft"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid draft or transition"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/draft [put]
func (h *ScreenHandler) UpdateDraft(c *gin.Context) {
	var draft rentview.EditableRentData
	if !h.bind(c, &draft) {
		return
	}
	h.withScreen(c, "Draft updated", func(_ context.Context, s *rentview.Screen) error {
		return s.UpdateDraft(draft)
	})
}

// CancelEdit handles POST /api/v1/rent-screen/sessions/:sid/modal/cancel
// @Summary Discard edits
// @Description Returns to viewing with the snapshot rebuilt from the record.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/cancel [post]
func (h *ScreenHandler) CancelEdit(c *gin.Context) {
	h.withScreen(c, "Edit cancelled", func(_ context.Context, s *rentview.Screen) error {
		return s.CancelEdit()
	})
}

// SaveEdits handles POST /api/v1/rent-screen/sessions/:sid/modal/save
// @Summary Save the edit draft
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view; a failed save is reported as a notification"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 409 {object} utils.APIResponse "Save in progress"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/save [post]
func (h *ScreenHandler) SaveEdits(c *gin.Context) {
	h.withScreen(c, "Saved", func(ctx context.Context, s *rentview.Screen) error {
		return s.SaveEdits(ctx)
	})
}

// CloseModal handles POST /api/v1/rent-screen/sessions/:sid/modal/close
// @Summary Close the view modal
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/close [post]
func (h *ScreenHandler) CloseModal(c *gin.Context) {
	h.withScreen(c, "Modal closed", func(_ context.Context, s *rentview.Screen) error {
		return s.CloseModal()
	})
}

// OpenDeleteConfirm handles POST /api/v1/rent-screen/sessions/:sid/modal/delete
// @Summary Open the delete confirmation
// @Description Closes the view modal. Owner only.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 403 {object} utils.APIResponse "Role not allowed"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/delete [post]
func (h *ScreenHandler) OpenDeleteConfirm(c *gin.Context) {
	h.withScreen(c, "Confirm delete", func(_ context.Context, s *rentview.Screen) error {
		return s.OpenDeleteConfirm(middleware.RoleFrom(c))
	})
}

// CancelDelete handles POST /api/v1/rent-screen/sessions/:sid/modal/delete/cancel
// @Summary Cancel the delete confirmation
// @Description Closes the confirmation without reopening the view modal.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/delete/cancel [post]
func (h *ScreenHandler) CancelDelete(c *gin.Context) {
	h.withScreen(c, "Delete cancelled", func(_ context.Context, s *rentview.Screen) error {
		return s.CancelDelete()
	})
}

// ConfirmDelete handles POST /api/v1/rent-screen/sessions/:sid/modal/delete/confirm
// @Summary Confirm the delete
// @Description Owner and manager only. On success the period is refetched and the summary refreshed.
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view; a failed delete is reported as a notification"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 403 {object} utils.APIResponse "Role not allowed"
// @Failure 409 {object} utils.APIResponse "Delete in progress"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/modal/delete/confirm [post]
func (h *ScreenHandler) ConfirmDelete(c *gin.Context) {
	h.withScreen(c, "Deleted", func(ctx context.Context, s *rentview.Screen) error {
		return s.ConfirmDelete(ctx, middleware.RoleFrom(c))
	})
}

// Refresh handles POST /api/v1/rent-screen/sessions/:sid/refresh
// @Summary Refetch the selected period
// @Tags rent-screen
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} utils.APIResponse{data=rentview.View} "Updated view; a failed fetch is reported as a notification"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/refresh [post]
func (h *ScreenHandler) Refresh(c *gin.Context) {
	h.withScreen(c, "Refreshed", func(ctx context.Context, s *rentview.Screen) error {
		return s.Refresh(ctx)
	})
}

// DownloadReceipt handles POST /api/v1/rent-screen/sessions/:sid/rows/:rowId/download
// @Summary Download a row's receipt
// @Description Returns the PDF of the row's current cycle. A failed download answers 200 with the view carrying the error notification.
// @Tags rent-screen
// @Produce application/pdf
// @Produce json
// @Param sid path string true "Session id"
// @Param rowId path string true "Row id (current cycle id)"
// @Success 200 {file} file "PDF receipt"
// @Failure 400 {object} utils.APIResponse "Row not on the current page"
// @Failure 409 {object} utils.APIResponse "Download in progress"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /api/v1/rent-screen/sessions/{sid}/rows/{rowId}/download [post]
func (h *ScreenHandler) DownloadReceipt(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	receipt, err := sess.Screen.DownloadReceipt(h.ctx(c), c.Param("rowId"))
	if err != nil {
		h.respond(c, sess, "Download failed", err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(receipt.Filename))
	c.Data(http.StatusOK, receipt.ContentType, receipt.Content)
}

// ctx forwards the caller's token to a remote rent API
func (h *ScreenHandler) ctx(c *gin.Context) context.Context {
	return rentapi.WithToken(c.Request.Context(), c.GetString(middleware.ContextToken))
}

func (h *ScreenHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := h.sessions.Get(c.Param("sid"), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.NotFoundResponse(c, "Session not found")
		return nil, false
	}
	return sess, true
}

func (h *ScreenHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return false
	}
	return true
}

func (h *ScreenHandler) withScreen(c *gin.Context, message string, fn func(ctx context.Context, s *rentview.Screen) error) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, sess, message, fn(h.ctx(c), sess.Screen))
}

func (h *ScreenHandler) withValue(c *gin.Context, message string, fn func(ctx context.Context, s *rentview.Screen, v string) error) {
	var req ValueRequest
	if !h.bind(c, &req) {
		return
	}
	h.withScreen(c, message, func(ctx context.Context, s *rentview.Screen) error {
		return fn(ctx, s, req.Value)
	})
}

// respond writes the view. Engine refusals become 4xx; collaborator failures
// already sit in the view as notifications and answer 200.
func (h *ScreenHandler) respond(c *gin.Context, sess *session.Session, message string, err error) {
	if err == nil {
		utils.SuccessResponse(c, message, sess.Screen.View())
		return
	}

	switch {
	case errors.Is(err, rentview.ErrScreenClosed):
		utils.NotFoundResponse(c, "Session not found")
	case errors.Is(err, rentview.ErrForbidden):
		utils.ErrorResponseWithData(c, http.StatusForbidden, "Role not allowed", err, sess.Screen.View())
	case errors.Is(err, rentview.ErrInFlight):
		utils.ErrorResponseWithData(c, http.StatusConflict, "Action already in progress", err, sess.Screen.View())
	case rentview.IsRefusal(err):
		utils.ErrorResponseWithData(c, http.StatusBadRequest, "Action refused", err, sess.Screen.View())
	default:
		h.logger.WithError(err).WithField("session_id", sess.ID).Info("Rent screen action failed")
		utils.ErrorResponseWithData(c, http.StatusOK, "Action failed", err, sess.Screen.View())
	}
}
