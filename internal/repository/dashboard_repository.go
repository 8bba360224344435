package repository

import (
	"context"

	"rent-bo-svc/internal/models/response"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository defines the interface for dashboard data operations
type DashboardRepository interface {
	GetRentSummary(ctx context.Context, month, year int) (*response.RentSummaryResponse, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

type rentTotalsRow struct {
	TotalDueAmount        decimal.Decimal
	TotalPaidThisMonth    decimal.Decimal
	TotalPendingThisMonth decimal.Decimal
}

type depositRow struct {
	Total decimal.Decimal
}

// GetRentSummary aggregates the summary card totals for a billing period
func (r *dashboardRepository) GetRentSummary(ctx context.Context, month, year int) (*response.RentSummaryResponse, error) {
	var totals rentTotalsRow

	query := `
		SELECT
			COALESCE(SUM(rr.total) FILTER (WHERE rr.status <> 'paid'), 0) AS total_due_amount,
			COALESCE(SUM(rr.total) FILTER (WHERE rr.status = 'paid' AND rr.month = ? AND rr.year = ?), 0) AS total_paid_this_month,
			COALESCE(SUM(rr.total) FILTER (WHERE rr.status = 'pending' AND rr.month = ? AND rr.year = ?), 0) AS total_pending_this_month
		FROM rent_records rr
		JOIN tenants t
			ON t.id = rr.tenant_id
		   AND t.published_at IS NOT NULL
		WHERE rr.published_at IS NOT NULL
	`

	err := r.db.WithContext(ctx).Raw(query, month, year, month, year).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var deposits depositRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(t.security_deposit), 0) AS total
		FROM tenants t
		WHERE t.published_at IS NOT NULL
	`).Scan(&deposits).Error
	if err != nil {
		return nil, err
	}

	return &response.RentSummaryResponse{
		Month:                 month,
		Year:                  year,
		TotalDueAmount:        totals.TotalDueAmount,
		TotalPaidThisMonth:    totals.TotalPaidThisMonth,
		TotalPendingThisMonth: totals.TotalPendingThisMonth,
		TotalDeposit:          deposits.Total,
	}, nil
}
