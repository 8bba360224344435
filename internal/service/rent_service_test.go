package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"rent-bo-svc/internal/models"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakeRentRepo struct {
	records   []*models.RentRecord
	statusErr error
	deleteErr error

	updatedID     string
	updatedStatus string
	updatedPaidAt *time.Time
	deletedID     string
}

func (r *fakeRentRepo) GetRecordsForPeriod(_ context.Context, month, year int) ([]*models.RentRecord, error) {
	var out []*models.RentRecord
	for _, rec := range r.records {
		if rec.Month == month && rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRentRepo) GetRecordsForTenants(_ context.Context, tenantIDs []uint, month, year int) ([]*models.RentRecord, error) {
	wanted := map[uint]bool{}
	for _, id := range tenantIDs {
		wanted[id] = true
	}
	var out []*models.RentRecord
	for _, rec := range r.records {
		if rec.Month == month && rec.Year == year && wanted[rec.TenantID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRentRepo) GetByDocumentID(_ context.Context, documentID string) (*models.RentRecord, error) {
	for _, rec := range r.records {
		if rec.DocumentID == documentID {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRentRepo) UpdateStatus(_ context.Context, documentID, status string, paidAt *time.Time) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.updatedID, r.updatedStatus, r.updatedPaidAt = documentID, status, paidAt
	return nil
}

func (r *fakeRentRepo) DeleteByDocumentID(_ context.Context, documentID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = documentID
	return nil
}

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func tenant(id uint, name string) models.Tenant {
	return models.Tenant{
		ID:          id,
		DocumentID:  name + "-doc",
		FullName:    name,
		Email:       name + "@example.com",
		Floor:       "2",
		CompanyName: name + " Pvt Ltd",
	}
}

func record(doc string, t models.Tenant, month, year int, status string, amount int64) *models.RentRecord {
	return &models.RentRecord{
		DocumentID:  doc,
		TenantID:    t.ID,
		Tenant:      t,
		Month:       month,
		Year:        year,
		DueDate:     time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(amount),
		Maintenance: decimal.NewFromInt(500),
		CGST:        decimal.NewFromInt(900),
		SGST:        decimal.NewFromInt(900),
		TDS:         decimal.NewFromInt(100),
		Total:       decimal.NewFromInt(amount + 2200),
		Status:      status,
	}
}

func newTestRentService(repo *fakeRentRepo) *rentService {
	return &rentService{
		rentRepo: repo,
		receipts: NewReceiptRenderer("Rent Back Office", time.UTC),
		loc:      time.UTC,
		logger:   logger.NewNopLogger(),
		now:      func() time.Time { return testNow },
	}
}

func TestCombineRentRecords(t *testing.T) {
	asha, ravi := tenant(1, "asha"), tenant(2, "ravi")
	current := []*models.RentRecord{
		record("mar-asha", asha, 3, 2025, "pending", 20000),
		record("mar-ravi", ravi, 3, 2025, "overdue", 18000),
	}
	previous := []*models.RentRecord{
		record("feb-asha", asha, 2, 2025, "paid", 20000),
		record("feb-ravi", ravi, 2, 2025, "overdue", 18000),
	}

	items := CombineRentRecords(current, previous, time.UTC)
	require.Len(t, items, 2)

	assert.Equal(t, "asha-doc", items[0].TenantID)
	assert.Equal(t, "mar-asha", items[0].CurrentMonth.ID)
	assert.Equal(t, "2025-03-05T00:00:00Z", items[0].CurrentMonth.DueDate)
	assert.Equal(t, "feb-asha", items[0].PreviousMonth.ID)
	assert.True(t, items[0].PreviousMonth.Amount.IsZero(), "settled previous cycle has no dues")
	assert.True(t, items[0].PreviousMonth.Maintenance.Equal(decimal.NewFromInt(500)), "charges are kept")

	assert.Equal(t, "mar-ravi", items[1].CurrentMonth.ID)
	assert.True(t, items[1].PreviousMonth.HasDues())
}

func TestCombineRentRecordsFormatsDueDateInBusinessZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	rec := record("mar-asha", tenant(1, "asha"), 3, 2025, "pending", 20000)
	rec.DueDate = time.Date(2025, time.March, 1, 0, 0, 0, 0, ist)

	items := CombineRentRecords([]*models.RentRecord{rec}, nil, ist)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-03-01T00:00:00+05:30", items[0].CurrentMonth.DueDate)

	year, month, ok := items[0].CurrentMonth.DuePeriod()
	require.True(t, ok)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)
}

func TestCombineRentRecordsWithoutPreviousCycle(t *testing.T) {
	asha := tenant(1, "asha")
	items := CombineRentRecords([]*models.RentRecord{record("mar-asha", asha, 3, 2025, "pending", 20000)}, nil, time.UTC)

	require.Len(t, items, 1)
	assert.Empty(t, items[0].PreviousMonth.ID)
	assert.False(t, items[0].PreviousMonth.HasDues())
}

func TestGetCombinedRentsLooksUpPreviousYearInJanuary(t *testing.T) {
	asha := tenant(1, "asha")
	repo := &fakeRentRepo{records: []*models.RentRecord{
		record("jan-asha", asha, 1, 2025, "pending", 20000),
		record("dec-asha", asha, 12, 2024, "overdue", 20000),
	}}
	svc := newTestRentService(repo)

	items, err := svc.GetCombinedRents(context.Background(), 1, 2025)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dec-asha", items[0].PreviousMonth.ID)
}

func TestGetCombinedRentsRejectsBadPeriod(t *testing.T) {
	svc := newTestRentService(&fakeRentRepo{})

	_, err := svc.GetCombinedRents(context.Background(), 13, 2025)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetCombinedRents(context.Background(), 3, 25)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRentStatus(t *testing.T) {
	repo := &fakeRentRepo{}
	svc := newTestRentService(repo)

	require.NoError(t, svc.UpdateRentStatus(context.Background(), "mar-asha", rentview.StatusPaid))
	assert.Equal(t, "mar-asha", repo.updatedID)
	assert.Equal(t, "paid", repo.updatedStatus)
	require.NotNil(t, repo.updatedPaidAt)
	assert.Equal(t, testNow, *repo.updatedPaidAt)

	require.NoError(t, svc.UpdateRentStatus(context.Background(), "mar-asha", rentview.StatusOverdue))
	assert.Nil(t, repo.updatedPaidAt)

	err := svc.UpdateRentStatus(context.Background(), "mar-asha", rentview.Status("settled"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRentStatusKeepsNotFound(t *testing.T) {
	svc := newTestRentService(&fakeRentRepo{statusErr: gorm.ErrRecordNotFound})

	err := svc.UpdateRentStatus(context.Background(), "gone", rentview.StatusPaid)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteRent(t *testing.T) {
	repo := &fakeRentRepo{}
	svc := newTestRentService(repo)

	require.NoError(t, svc.DeleteRent(context.Background(), "mar-asha"))
	assert.Equal(t, "mar-asha", repo.deletedID)
}

func TestGenerateReceipt(t *testing.T) {
	asha := tenant(1, "asha")
	repo := &fakeRentRepo{records: []*models.RentRecord{record("mar-asha", asha, 3, 2025, "paid", 20000)}}
	svc := newTestRentService(repo)

	pdf, err := svc.GenerateReceipt(context.Background(), "mar-asha", 2025, 3)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.GenerateReceipt(context.Background(), "mar-asha", 2025, 4)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GenerateReceipt(context.Background(), "missing", 2025, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGenerateReceiptForCycleDueNextMonth(t *testing.T) {
	rec := record("mar-asha", tenant(1, "asha"), 3, 2025, "pending", 20000)
	rec.DueDate = time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)
	svc := newTestRentService(&fakeRentRepo{records: []*models.RentRecord{rec}})

	pdf, err := svc.GenerateReceipt(context.Background(), "mar-asha", 2025, 4)
	require.NoError(t, err, "due date period is accepted")
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	pdf, err = svc.GenerateReceipt(context.Background(), "mar-asha", 2025, 3)
	require.NoError(t, err, "billing period is accepted")
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.GenerateReceipt(context.Background(), "mar-asha", 2025, 5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportRentsToPDF(t *testing.T) {
	asha, ravi := tenant(1, "asha"), tenant(2, "ravi")
	repo := &fakeRentRepo{records: []*models.RentRecord{
		record("mar-asha", asha, 3, 2025, "pending", 20000),
		record("mar-ravi", ravi, 3, 2025, "paid", 18000),
	}}
	svc := newTestRentService(repo)

	content, filename, err := svc.ExportRentsToPDF(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, "rent_report_2025_03_20250310_093000.pdf", filename)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	_, _, err = svc.ExportRentsToPDF(context.Background(), 0, 2025)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportRentsToPDFWithoutRows(t *testing.T) {
	svc := newTestRentService(&fakeRentRepo{})

	content, _, err := svc.ExportRentsToPDF(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestExportRentsToExcel(t *testing.T) {
	asha, ravi := tenant(1, "asha"), tenant(2, "ravi")
	repo := &fakeRentRepo{records: []*models.RentRecord{
		record("mar-asha", asha, 3, 2025, "pending", 20000),
		record("mar-ravi", ravi, 3, 2025, "paid", 18000),
	}}
	svc := newTestRentService(repo)

	content, filename, err := svc.ExportRentsToExcel(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, "rent_export_2025_03_20250310_093000.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rentSheetName}, f.GetSheetList())

	rows, err := f.GetRows(rentSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Rent for March 2025", rows[0][0])
	assert.Equal(t, rentExportHeaders, rows[1])
	assert.Equal(t, "asha", rows[2][1])
	assert.Equal(t, "March 2025", rows[2][5])
	assert.Equal(t, "pending", rows[2][6])
	assert.Equal(t, "ravi", rows[3][1])
	assert.Equal(t, "paid", rows[3][6])
}
