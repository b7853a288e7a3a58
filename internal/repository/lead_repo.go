package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thavon/voice-lead-service/internal/domain"
	"gorm.io/gorm"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GORM lead repository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// Create creates a new lead
func (r *GormLeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}

	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *GormLeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, id)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return &lead, nil
}

// GetByOrgID retrieves all leads for an organization, newest first
func (r *GormLeadRepository) GetByOrgID(ctx context.Context, orgID string) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}

	return leads, nil
}

// UpdateStatus writes the lead's funnel status and last-call timestamp.
// This is the only write path for lead status in the whole service.
func (r *GormLeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error {
	result := r.db.WithContext(ctx).Model(&domain.Lead{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":    status,
		"last_call": lastCall,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update lead status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, id)
	}

	return nil
}
