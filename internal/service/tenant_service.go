package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/internal/repository"
	"rent-bo-svc/pkg/logger"

	"github.com/shopspring/decimal"
)

// TenantService defines the interface for tenant business operations
type TenantService interface {
	PatchTenant(ctx context.Context, id string, patch rentview.TenantPatch) error
}

// tenantService implements TenantService
type tenantService struct {
	tenantRepo repository.TenantRepository
	logger     *logger.Logger
}

// NewTenantService creates a new instance of TenantService
func NewTenantService(tenantRepo repository.TenantRepository, logger *logger.Logger) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// ValidateTenantPatch rejects blank names and negative amounts
func ValidateTenantPatch(patch rentview.TenantPatch) error {
	if strings.TrimSpace(patch.Name) == "" {
		return validationError("name is required")
	}
	amounts := map[string]decimal.Decimal{
		"rent":        patch.Rent,
		"maintenance": patch.Maintenance,
		"cgst":        patch.CGST,
		"sgst":        patch.SGST,
		"tds":         patch.TDS,
		"total":       patch.Total,
	}
	for _, field := range []string{"rent", "maintenance", "cgst", "sgst", "tds", "total"} {
		if amounts[field].IsNegative() {
			return validationError("%s must not be negative", field)
		}
	}
	return nil
}

// PatchTenant saves the name and charges edited in the rent view modal
func (s *tenantService) PatchTenant(ctx context.Context, id string, patch rentview.TenantPatch) error {
	if err := ValidateTenantPatch(patch); err != nil {
		s.logger.WithError(err).WithField("tenant_id", id).Warn("Rejected tenant patch")
		return err
	}

	current, err := s.tenantRepo.GetByDocumentID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("tenant_id", id).Warn("Tenant not available for patch")
		return fmt.Errorf("failed to get tenant: %w", err)
	}

	updates := map[string]interface{}{
		"full_name":   strings.TrimSpace(patch.Name),
		"rent":        patch.Rent,
		"maintenance": patch.Maintenance,
		"cgst":        patch.CGST,
		"sgst":        patch.SGST,
		"tds":         patch.TDS,
		"total":       patch.Total,
		"updated_at":  time.Now(),
	}
	if err := s.tenantRepo.UpdateFinancials(ctx, id, updates); err != nil {
		s.logger.WithError(err).WithField("tenant_id", id).Error("Failed to patch tenant")
		return fmt.Errorf("failed to patch tenant: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id":     id,
		"previous_name": current.FullName,
	}).Info("Tenant patched successfully")
	return nil
}
