package service

import (
	"context"
	"errors"

	"rent-bo-svc/internal/rentview"

	"gorm.io/gorm"
)

// screenBackend serves rent view sessions straight from the local services
type screenBackend struct {
	rents     RentService
	tenants   TenantService
	dashboard DashboardService
}

// NewScreenBackend adapts the local services to the rent view collaborator contract
func NewScreenBackend(rents RentService, tenants TenantService, dashboard DashboardService) rentview.Backend {
	return &screenBackend{
		rents:     rents,
		tenants:   tenants,
		dashboard: dashboard,
	}
}

func (b *screenBackend) FetchDataset(ctx context.Context, month, year int) ([]rentview.CombinedRentItem, error) {
	items, err := b.rents.GetCombinedRents(ctx, month, year)
	if err != nil {
		return nil, classify("fetch dataset", err)
	}
	return items, nil
}

func (b *screenBackend) UpdateStatus(ctx context.Context, id string, status rentview.Status) error {
	return classify("update status", b.rents.UpdateRentStatus(ctx, id, status))
}

func (b *screenBackend) DeleteRecord(ctx context.Context, id string) error {
	return classify("delete record", b.rents.DeleteRent(ctx, id))
}

func (b *screenBackend) SaveTenantEdits(ctx context.Context, tenantID string, patch rentview.TenantPatch) error {
	return classify("save tenant", b.tenants.PatchTenant(ctx, tenantID, patch))
}

func (b *screenBackend) DownloadReceipt(ctx context.Context, id string, year, month int) ([]byte, error) {
	pdf, err := b.rents.GenerateReceipt(ctx, id, year, month)
	if err != nil {
		return nil, classify("download receipt", err)
	}
	return pdf, nil
}

func (b *screenBackend) RefreshDashboardSummary(ctx context.Context) error {
	_, err := b.dashboard.RefreshRentSummary(ctx)
	return classify("refresh summary", err)
}

// classify maps service failures onto the rent view error taxonomy
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return rentview.NewNotFoundError(op, err)
	case errors.Is(err, ErrValidation):
		return rentview.NewValidationError(op, err)
	default:
		return rentview.NewNetworkError(op, err)
	}
}
