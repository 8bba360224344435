package repository

import (
	"context"

	"rent-bo-svc/internal/models"

	"gorm.io/gorm"
)

// SchedulerLogRepository defines the interface for scheduler log data operations
type SchedulerLogRepository interface {
	Create(ctx context.Context, entry *models.SchedulerLog) error
}

// schedulerLogRepository implements SchedulerLogRepository
type schedulerLogRepository struct {
	db *gorm.DB
}

// NewSchedulerLogRepository creates a new instance of SchedulerLogRepository
func NewSchedulerLogRepository(db *gorm.DB) SchedulerLogRepository {
	return &schedulerLogRepository{
		db: db,
	}
}

// Create inserts a scheduler log entry
func (r *schedulerLogRepository) Create(ctx context.Context, entry *models.SchedulerLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
