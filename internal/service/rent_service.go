package service

import (
	"context"
	"fmt"
	"time"

	"rent-bo-svc/internal/models"
	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/repository"
	"rent-bo-svc/pkg/logger"

	"github.com/shopspring/decimal"
)

// RentService defines the interface for rent business operations
type RentService interface {
	GetCombinedRents(ctx context.Context, month, year int) ([]rentview.CombinedRentItem, error)
	UpdateRentStatus(ctx context.Context, id string, status rentview.Status) error
	DeleteRent(ctx context.Context, id string) error
	GenerateReceipt(ctx context.Context, id string, year, month int) ([]byte, error)
	ExportRentsToExcel(ctx context.Context, month, year int) ([]byte, string, error)
	ExportRentsToPDF(ctx context.Context, month, year int) ([]byte, string, error)
}

// rentService implements RentService
type rentService struct {
	rentRepo repository.RentRepository
	receipts *ReceiptRenderer
	loc      *time.Location
	logger   *logger.Logger
	now      func() time.Time
}

// NewRentService creates a new instance of RentService. Due dates are reported
// in loc, the zone the business bills in.
func NewRentService(rentRepo repository.RentRepository, receipts *ReceiptRenderer, loc *time.Location, logger *logger.Logger) RentService {
	if loc == nil {
		loc = time.UTC
	}
	return &rentService{
		rentRepo: rentRepo,
		receipts: receipts,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// GetCombinedRents pairs every record of the period with the same tenant's previous cycle
func (s *rentService) GetCombinedRents(ctx context.Context, month, year int) ([]rentview.CombinedRentItem, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	current, err := s.rentRepo.GetRecordsForPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get rent records: %w", err)
	}

	tenantIDs := make([]uint, 0, len(current))
	for _, rec := range current {
		tenantIDs = append(tenantIDs, rec.TenantID)
	}
	prevMonth, prevYear := previousPeriod(month, year)
	previous, err := s.rentRepo.GetRecordsForTenants(ctx, tenantIDs, prevMonth, prevYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous rent records: %w", err)
	}

	items := CombineRentRecords(current, previous, s.loc)

	s.logger.WithFields(map[string]interface{}{
		"month": month,
		"year":  year,
		"count": len(items),
	}).Info("Combined rent records retrieved successfully")

	return items, nil
}

// CombineRentRecords builds one row per current record, in input order. A
// settled previous cycle keeps its charges but reports no outstanding amount.
// Due dates are formatted in loc.
func CombineRentRecords(current, previous []*models.RentRecord, loc *time.Location) []rentview.CombinedRentItem {
	if loc == nil {
		loc = time.UTC
	}
	prevByTenant := make(map[uint]*models.RentRecord, len(previous))
	for _, rec := range previous {
		prevByTenant[rec.TenantID] = rec
	}

	items := make([]rentview.CombinedRentItem, 0, len(current))
	for _, rec := range current {
		item := rentview.CombinedRentItem{
			TenantID:       rec.Tenant.DocumentID,
			TenantName:     rec.Tenant.FullName,
			TenantEmail:    rec.Tenant.Email,
			Address:        rec.Tenant.Address,
			Floor:          rec.Tenant.Floor,
			CompanyName:    rec.Tenant.CompanyName,
			LeaseStartDate: formatDate(rec.Tenant.LeaseStartDate),
			LeaseEndDate:   formatDate(rec.Tenant.LeaseEndDate),
			CurrentMonth:   toMonthRecord(rec, loc),
		}
		if prev, ok := prevByTenant[rec.TenantID]; ok {
			item.PreviousMonth = toMonthRecord(prev, loc)
			if prev.Status == string(rentview.StatusPaid) {
				item.PreviousMonth.Amount = decimal.Zero
			}
		}
		items = append(items, item)
	}
	return items
}

func toMonthRecord(rec *models.RentRecord, loc *time.Location) rentview.MonthRecord {
	return rentview.MonthRecord{
		ID:          rec.DocumentID,
		Amount:      rec.Amount,
		Status:      rentview.Status(rec.Status),
		DueDate:     rec.DueDate.In(loc).Format(time.RFC3339),
		CGST:        rec.CGST,
		SGST:        rec.SGST,
		Maintenance: rec.Maintenance,
		TDS:         rec.TDS,
		Total:       rec.Total,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// UpdateRentStatus sets the status of one record, stamping paid_at when paid
func (s *rentService) UpdateRentStatus(ctx context.Context, id string, status rentview.Status) error {
	if _, err := rentview.ParseStatus(string(status)); err != nil {
		return validationError("unknown status %q", status)
	}

	var paidAt *time.Time
	if status == rentview.StatusPaid {
		now := s.now()
		paidAt = &now
	}

	if err := s.rentRepo.UpdateStatus(ctx, id, string(status), paidAt); err != nil {
		s.logger.WithError(err).WithField("rent_id", id).Error("Failed to update rent status")
		return fmt.Errorf("failed to update rent status: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"rent_id": id,
		"status":  status,
	}).Info("Rent status updated successfully")
	return nil
}

// DeleteRent removes one record
func (s *rentService) DeleteRent(ctx context.Context, id string) error {
	if err := s.rentRepo.DeleteByDocumentID(ctx, id); err != nil {
		s.logger.WithError(err).WithField("rent_id", id).Error("Failed to delete rent record")
		return fmt.Errorf("failed to delete rent record: %w", err)
	}
	s.logger.WithField("rent_id", id).Info("Rent record deleted successfully")
	return nil
}

// GenerateReceipt renders the PDF receipt of one record. The requested period
// may be the billing cycle or the calendar month the record falls due in.
func (s *rentService) GenerateReceipt(ctx context.Context, id string, year, month int) ([]byte, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	rec, err := s.rentRepo.GetByDocumentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rent record: %w", err)
	}
	if !s.receiptPeriodMatches(rec, year, month) {
		return nil, validationError("rent record %s belongs to %d-%02d, not %d-%02d", id, rec.Year, rec.Month, year, month)
	}

	pdf, err := s.receipts.Render(rec, s.now())
	if err != nil {
		s.logger.WithError(err).WithField("rent_id", id).Error("Failed to render receipt")
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return pdf, nil
}

func (s *rentService) receiptPeriodMatches(rec *models.RentRecord, year, month int) bool {
	if rec.Month == month && rec.Year == year {
		return true
	}
	due := rec.DueDate.In(s.loc)
	return due.Year() == year && int(due.Month()) == month
}

// ExportRentsToExcel exports the combined rows of a period
func (s *rentService) ExportRentsToExcel(ctx context.Context, month, year int) ([]byte, string, error) {
	items, err := s.GetCombinedRents(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	content, err := BuildRentWorkbook(items, month, year)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("rent_export_%d_%02d_%s.xlsx", year, month, s.now().Format("20060102_150405"))
	return content, filename, nil
}

// ExportRentsToPDF renders one report of every combined row of a period
func (s *rentService) ExportRentsToPDF(ctx context.Context, month, year int) ([]byte, string, error) {
	items, err := s.GetCombinedRents(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	content, err := s.receipts.RenderPeriod(items, month, year, s.now())
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"month": month,
			"year":  year,
		}).Error("Failed to render rent report")
		return nil, "", fmt.Errorf("failed to render rent report: %w", err)
	}

	filename := fmt.Sprintf("rent_report_%d_%02d_%s.pdf", year, month, s.now().Format("20060102_150405"))
	return content, filename, nil
}
