package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rent-bo-svc/internal/models"
	"rent-bo-svc/internal/models/response"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDashboardRepo struct {
	calls int
	err   error
}

func (r *fakeDashboardRepo) GetRentSummary(_ context.Context, month, year int) (*response.RentSummaryResponse, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &response.RentSummaryResponse{
		Month:          month,
		Year:           year,
		TotalDueAmount: decimal.NewFromInt(int64(1000 * r.calls)),
	}, nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want rentview.ErrorKind
	}{
		{name: "record not found", err: fmt.Errorf("failed: %w", gorm.ErrRecordNotFound), want: rentview.KindNotFound},
		{name: "validation", err: validationError("bad month"), want: rentview.KindValidation},
		{name: "database down", err: errors.New("connection refused"), want: rentview.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("op", tt.err)
			assert.Equal(t, tt.want, rentview.Classify(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classify("op", nil))
}

func TestScreenBackendDrivesLocalServices(t *testing.T) {
	asha := tenant(1, "asha")
	rents := &fakeRentRepo{records: []*models.RentRecord{record("mar-asha", asha, 3, 2025, "pending", 20000)}}
	tenants := &fakeTenantRepo{}
	dashRepo := &fakeDashboardRepo{}

	backend := NewScreenBackend(
		newTestRentService(rents),
		NewTenantService(tenants, logger.NewNopLogger()),
		NewDashboardService(dashRepo, logger.NewNopLogger()),
	)
	ctx := context.Background()

	items, err := backend.FetchDataset(ctx, 3, 2025)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, backend.UpdateStatus(ctx, "mar-asha", rentview.StatusPaid))
	assert.Equal(t, "paid", rents.updatedStatus)

	require.NoError(t, backend.SaveTenantEdits(ctx, "asha-doc", validPatch()))
	assert.Equal(t, "asha-doc", tenants.id)

	pdf, err := backend.DownloadReceipt(ctx, "mar-asha", 2025, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NoError(t, backend.RefreshDashboardSummary(ctx))
	assert.Equal(t, 1, dashRepo.calls)

	require.NoError(t, backend.DeleteRecord(ctx, "mar-asha"))
	assert.Equal(t, "mar-asha", rents.deletedID)
}

func TestScreenDownloadsReceiptDueAfterBillingMonth(t *testing.T) {
	rec := record("mar-asha", tenant(1, "asha"), 3, 2025, "pending", 20000)
	rec.DueDate = time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)
	backend := NewScreenBackend(
		newTestRentService(&fakeRentRepo{records: []*models.RentRecord{rec}}),
		NewTenantService(&fakeTenantRepo{}, logger.NewNopLogger()),
		NewDashboardService(&fakeDashboardRepo{}, logger.NewNopLogger()),
	)
	screen := rentview.NewScreen(rentview.Options{
		Backend: backend,
		Now:     func() time.Time { return testNow },
	})
	ctx := context.Background()
	require.NoError(t, screen.Mount(ctx))

	receipt, err := screen.DownloadReceipt(ctx, "mar-asha")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(receipt.Content, []byte("%PDF")))
}

func TestScreenBackendClassifiesFailures(t *testing.T) {
	rents := &fakeRentRepo{deleteErr: gorm.ErrRecordNotFound}
	backend := NewScreenBackend(
		newTestRentService(rents),
		NewTenantService(&fakeTenantRepo{}, logger.NewNopLogger()),
		NewDashboardService(&fakeDashboardRepo{err: errors.New("timeout")}, logger.NewNopLogger()),
	)
	ctx := context.Background()

	assert.ErrorIs(t, backend.DeleteRecord(ctx, "gone"), rentview.ErrNotFound)
	assert.ErrorIs(t, backend.UpdateStatus(ctx, "x", rentview.Status("bogus")), rentview.ErrValidation)

	p := validPatch()
	p.Rent = decimal.NewFromInt(-5)
	assert.ErrorIs(t, backend.SaveTenantEdits(ctx, "asha-doc", p), rentview.ErrValidation)

	_, err := backend.FetchDataset(ctx, 0, 2025)
	assert.ErrorIs(t, err, rentview.ErrValidation)

	assert.ErrorIs(t, backend.RefreshDashboardSummary(ctx), rentview.ErrNetwork)
}

func TestDashboardSummaryCache(t *testing.T) {
	repo := &fakeDashboardRepo{}
	now := testNow
	svc := &dashboardService{
		dashboardRepo: repo,
		logger:        logger.NewNopLogger(),
		now:           func() time.Time { return now },
	}
	ctx := context.Background()

	first, err := svc.GetRentSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Month)
	assert.Equal(t, testNow, first.RefreshedAt)

	again, err := svc.GetRentSummary(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, repo.calls)

	refreshed, err := svc.RefreshRentSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.True(t, refreshed.TotalDueAmount.Equal(decimal.NewFromInt(2000)))

	now = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	rolled, err := svc.GetRentSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, rolled.Month)
	assert.Equal(t, 3, repo.calls)
}
