package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"rent-bo-svc/docs"
	"rent-bo-svc/internal/config"
	"rent-bo-svc/internal/database"
	"rent-bo-svc/internal/handler"
	"rent-bo-svc/internal/metrics"
	"rent-bo-svc/internal/middleware"
	"rent-bo-svc/internal/rentapi"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/repository"
	"rent-bo-svc/internal/scheduler"
	"rent-bo-svc/internal/service"
	"rent-bo-svc/internal/session"
	"rent-bo-svc/pkg/logger"
)

// @title Rent Back Office Service API
// @version 1.0
// @description Rent records, tenants, dashboard summary and rent screen view sessions

// @contact.name API Support

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Rent Back Office Service API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Rent Back Office Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	rentRepo := repository.NewRentRepository(db.DB)
	tenantRepo := repository.NewTenantRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize services
	receipts := service.NewReceiptRenderer(cfg.Rent.ReceiptIssuer, cfg.Rent.Location)
	rentService := service.NewRentService(rentRepo, receipts, cfg.Rent.Location, appLogger)
	tenantService := service.NewTenantService(tenantRepo, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, appLogger)

	// Rent screen backend
	var backend rentview.Backend
	switch cfg.Rent.Backend {
	case config.RentBackendRemote:
		backend = rentapi.NewClient(cfg.Rent.APIBaseURL, cfg.Rent.APITimeout, appLogger)
		appLogger.WithField("base_url", cfg.Rent.APIBaseURL).Info("Rent screen uses remote rent API")
	default:
		backend = service.NewScreenBackend(rentService, tenantService, dashboardService)
	}

	// Metrics and view sessions
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	sessions := session.NewStore(func(sessionID, ownerID string) *rentview.Screen {
		return rentview.NewScreen(rentview.Options{
			Backend: backend,
			Logger:  appLogger,
			LogFields: map[string]interface{}{
				"session_id": sessionID,
				"user_id":    ownerID,
			},
			Recorder:    recorder,
			RowsPerPage: cfg.Rent.DefaultRowsPerPage,
		})
	}, recorder, appLogger)

	// Idle session sweeper
	sweeper := scheduler.NewSessionSweeper(sessions, schedulerLogRepo, appLogger, cfg.Scheduler.SessionSweepCron, cfg.Scheduler.SessionIdleTTL)
	if err := sweeper.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start session sweeper")
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.Origins()))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())
	router.HandleMethodNotAllowed = true

	// Setup routes
	handler.SetupRoutes(router, rentService, tenantService, dashboardService, sessions, cfg.JWT.Secret, appLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Stop the sweeper and close every open screen
	sweeper.Stop()
	sessions.CloseAll()

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
