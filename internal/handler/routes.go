package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rent-bo-svc/internal/middleware"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/service"
	"rent-bo-svc/internal/session"
	"rent-bo-svc/pkg/logger"
)

// Routes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	rentService service.RentService,
	tenantService service.TenantService,
	dashboardService service.DashboardService,
	sessions *session.Store,
	jwtSecret string,
	logger *logger.Logger,
) {
	// Initialize handlers
	rentHandler := NewRentHandler(rentService, logger)
	tenantHandler := NewTenantHandler(tenantService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)
	screenHandler := NewScreenHandler(sessions, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	writers := middleware.RequireRoles(rentview.RoleOwner, rentview.RoleManager)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtSecret))

		// Rent routes
		rents := authed.Group("/rents")
		{
			rents.GET("", rentHandler.GetRents)
			rents.GET("/export", rentHandler.ExportRents)
			rents.GET("/export/pdf", rentHandler.ExportRentsPDF)
			rents.GET("/:id/receipt", rentHandler.DownloadReceipt)
			rents.PATCH("/:id/status", writers, rentHandler.UpdateRentStatus)
			rents.DELETE("/:id", writers, rentHandler.DeleteRent)
		}

		// Tenant routes
		tenants := authed.Group("/tenants")
		{
			tenants.PATCH("/:id", writers, tenantHandler.PatchTenant)
		}

		// Dashboard routes
		dashboard := authed.Group("/dashboard")
		{
			dashboard.GET("/rent-summary", dashboardHandler.GetRentSummary)
			dashboard.POST("/rent-summary/refresh", dashboardHandler.RefreshRentSummary)
		}

		// Rent screen view sessions
		screens := authed.Group("/rent-screen/sessions")
		{
			screens.POST("", screenHandler.CreateSession)
			screens.GET("", screenHandler.ListSessions)
			screens.GET("/:sid", screenHandler.GetView)
			screens.DELETE("/:sid", screenHandler.DeleteSession)
			screens.POST("/:sid/refresh", screenHandler.Refresh)

			// Filters and pagination
			screens.PUT("/:sid/filters/search", screenHandler.SetSearch)
			screens.DELETE("/:sid/filters/search", screenHandler.ResetSearch)
			screens.PUT("/:sid/filters/status", screenHandler.SetStatusFilter)
			screens.PUT("/:sid/filters/month", screenHandler.SetMonthFilter)
			screens.PUT("/:sid/filters/year", screenHandler.SetYearFilter)
			screens.DELETE("/:sid/filters", screenHandler.ResetFilters)
			screens.PUT("/:sid/page", screenHandler.SetPage)
			screens.PUT("/:sid/rows-per-page", screenHandler.SetRowsPerPage)

			// Dropdowns
			screens.POST("/:sid/overlay/row-dropdown", screenHandler.OpenRowDropdown)
			screens.POST("/:sid/overlay/filter-dropdown", screenHandler.ToggleFilterDropdown)
			screens.POST("/:sid/overlay/click-outside", screenHandler.ClickOutside)
			screens.POST("/:sid/overlay/escape", screenHandler.Escape)

			// Row actions
			screens.POST("/:sid/rows/:rowId/status", screenHandler.ChangeStatus)
			screens.POST("/:sid/rows/:rowId/view", screenHandler.OpenView)
			screens.POST("/:sid/rows/:rowId/download", screenHandler.DownloadReceipt)

			// View modal and delete confirmation
			screens.POST("/:sid/modal/edit", screenHandler.BeginEdit)
			screens.PUT("/:sid/modal/draft", screenHandler.UpdateDraft)
			screens.POST("/:sid/modal/cancel", screenHandler.CancelEdit)
			screens.POST("/:sid/modal/save", screenHandler.SaveEdits)
			screens.POST("/:sid/modal/close", screenHandler.CloseModal)
			screens.POST("/:sid/modal/delete", screenHandler.OpenDeleteConfirm)
			screens.POST("/:sid/modal/delete/cancel", screenHandler.CancelDelete)
			screens.POST("/:sid/modal/delete/confirm", screenHandler.ConfirmDelete)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Rent Back Office Service",
	})
}
