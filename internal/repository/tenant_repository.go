package repository

import (
	"context"

	"rent-bo-svc/internal/models"

	"gorm.io/gorm"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	GetByDocumentID(ctx context.Context, documentID string) (*models.Tenant, error)
	UpdateFinancials(ctx context.Context, documentID string, updates map[string]interface{}) error
}

// tenantRepository implements TenantRepository
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new instance of TenantRepository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{
		db: db,
	}
}

// GetByDocumentID returns one tenant, or gorm.ErrRecordNotFound
func (r *tenantRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND published_at IS NOT NULL", documentID).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateFinancials applies name and charge updates to one tenant
func (r *tenantRepository) UpdateFinancials(ctx context.Context, documentID string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("document_id = ? AND published_at IS NOT NULL", documentID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
