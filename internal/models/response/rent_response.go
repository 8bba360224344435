package response

import (
	"time"

	"github.com/shopspring/decimal"

	"rent-bo-svc/internal/rentview"
)

// RentListResponse is the combined rent dataset of one billing period
type RentListResponse struct {
	Month    int                         `json:"month" example:"3"`
	Year     int                         `json:"year" example:"2025"`
	Combined []rentview.CombinedRentItem `json:"combined"`
}

// RentSummaryResponse backs the rent summary cards
type RentSummaryResponse struct {
	Month                 int             `json:"month" example:"3"`
	Year                  int             `json:"year" example:"2025"`
	TotalDueAmount        decimal.Decimal `json:"totalDueAmount" swaggertype:"number" example:"125000"`
	TotalPaidThisMonth    decimal.Decimal `json:"totalPaidThisMonth" swaggertype:"number" example:"80000"`
	TotalPendingThisMonth decimal.Decimal `json:"totalPendingThisMonth" swaggertype:"number" example:"45000"`
	TotalDeposit          decimal.Decimal `json:"totalDeposit" swaggertype:"number" example:"300000"`
	RefreshedAt           time.Time       `json:"refreshedAt"`
}

// UpdateRentStatusRequest is the body of PATCH /rents/:id/status
type UpdateRentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"paid"`
}
