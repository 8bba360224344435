package repository

import (
	"context"
	"time"

	"rent-bo-svc/internal/models"

	"gorm.io/gorm"
)

// RentRepository defines the interface for rent record data operations
type RentRepository interface {
	GetRecordsForPeriod(ctx context.Context, month, year int) ([]*models.RentRecord, error)
	GetRecordsForTenants(ctx context.Context, tenantIDs []uint, month, year int) ([]*models.RentRecord, error)
	GetByDocumentID(ctx context.Context, documentID string) (*models.RentRecord, error)
	UpdateStatus(ctx context.Context, documentID, status string, paidAt *time.Time) error
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

// rentRepository implements RentRepository
type rentRepository struct {
	db *gorm.DB
}

// NewRentRepository creates a new instance of RentRepository
func NewRentRepository(db *gorm.DB) RentRepository {
	return &rentRepository{
		db: db,
	}
}

// GetRecordsForPeriod returns the published records of a billing period with their tenants
func (r *rentRepository) GetRecordsForPeriod(ctx context.Context, month, year int) ([]*models.RentRecord, error) {
	var records []*models.RentRecord
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("month = ? AND year = ? AND published_at IS NOT NULL", month, year).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecordsForTenants returns the records of the given tenants for one period
func (r *rentRepository) GetRecordsForTenants(ctx context.Context, tenantIDs []uint, month, year int) ([]*models.RentRecord, error) {
	var records []*models.RentRecord
	if len(tenantIDs) == 0 {
		return records, nil
	}
	err := r.db.WithContext(ctx).
		Where("tenant_id IN ? AND month = ? AND year = ? AND published_at IS NOT NULL", tenantIDs, month, year).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetByDocumentID returns one record, or gorm.ErrRecordNotFound
func (r *rentRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.RentRecord, error) {
	var record models.RentRecord
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("document_id = ? AND published_at IS NOT NULL", documentID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus sets the status of one record
func (r *rentRepository) UpdateStatus(ctx context.Context, documentID, status string, paidAt *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.RentRecord{}).
		Where("document_id = ? AND published_at IS NOT NULL", documentID).
		Updates(map[string]interface{}{
			"status":     status,
			"paid_at":    paidAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByDocumentID removes one record
func (r *rentRepository) DeleteByDocumentID(ctx context.Context, documentID string) error {
	result := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&models.RentRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
