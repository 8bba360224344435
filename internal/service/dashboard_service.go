package service

import (
	"context"
	"sync"
	"time"

	"rent-bo-svc/internal/models/response"
	"rent-bo-svc/internal/repository"
	"rent-bo-svc/pkg/logger"
)

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetRentSummary(ctx context.Context) (*response.RentSummaryResponse, error)
	RefreshRentSummary(ctx context.Context) (*response.RentSummaryResponse, error)
}

// dashboardService implements DashboardService interface. The summary of
// the current month is cached until the next refresh.
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *logger.Logger
	now           func() time.Time

	mu     sync.RWMutex
	cached *response.RentSummaryResponse
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// GetRentSummary returns the cached summary, computing it on first use or
// when the month has rolled over
func (s *dashboardService) GetRentSummary(ctx context.Context) (*response.RentSummaryResponse, error) {
	now := s.now()
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached != nil && cached.Month == int(now.Month()) && cached.Year == now.Year() {
		return cached, nil
	}
	return s.RefreshRentSummary(ctx)
}

// RefreshRentSummary recomputes the summary of the current month
func (s *dashboardService) RefreshRentSummary(ctx context.Context) (*response.RentSummaryResponse, error) {
	now := s.now()
	month, year := int(now.Month()), now.Year()

	summary, err := s.dashboardRepo.GetRentSummary(ctx, month, year)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"month": month,
			"year":  year,
		}).Error("Failed to get rent summary")
		return nil, err
	}
	summary.RefreshedAt = now

	s.mu.Lock()
	s.cached = summary
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"month":         month,
		"year":          year,
		"total_due":     summary.TotalDueAmount.String(),
		"total_paid":    summary.TotalPaidThisMonth.String(),
		"total_pending": summary.TotalPendingThisMonth.String(),
	}).Info("Rent summary refreshed successfully")

	return summary, nil
}
