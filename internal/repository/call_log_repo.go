package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thavon/voice-lead-service/internal/domain"
	"gorm.io/gorm"
)

// GormCallLogRepository implements CallLogRepository using GORM
type GormCallLogRepository struct {
	db *gorm.DB
}

// NewGormCallLogRepository creates a new GORM call log repository
func NewGormCallLogRepository(db *gorm.DB) *GormCallLogRepository {
	return &GormCallLogRepository{db: db}
}

// Create appends one immutable call log row
func (r *GormCallLogRepository) Create(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, fmt.Errorf("failed to create call log: %w", err)
	}

	return log, nil
}

// GetByOrgID retrieves recent call logs for an organization, newest first
func (r *GormCallLogRepository) GetByOrgID(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var logs []*domain.CallLog
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get call logs: %w", err)
	}

	return logs, nil
}

// SumDurationSince sums the duration of completed calls in [since, until)
// for usage accounting. Only calls with a positive duration count.
func (r *GormCallLogRepository) SumDurationSince(ctx context.Context, orgID string, since, until time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&domain.CallLog{}).
		Select("SUM(duration)").
		Where("org_id = ? AND created_at >= ? AND created_at < ? AND duration > 0", orgID, since, until).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum call durations: %w", err)
	}

	if total == nil {
		return 0, nil
	}
	return *total, nil
}
