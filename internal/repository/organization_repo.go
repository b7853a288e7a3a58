package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/thavon/voice-lead-service/internal/domain"
	"gorm.io/gorm"
)

// Sentinel errors for the not-found cases handlers map to 404
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrLeadNotFound         = errors.New("lead not found")
)

// GormOrganizationRepository implements OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GORM organization repository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// GetByID retrieves an organization by ID
func (r *GormOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

// GetByPhoneNumber retrieves an organization by its inbound routing number.
// This sits on the assistant-request critical path, so only the columns the
// assistant builder needs are selected.
func (r *GormOrganizationRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Select("id", "name", "opening_line", "qualification_qs", "voice_config", "subscription_id").
		First(&org, "phone_number = ?", phoneNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: phone number %s", ErrOrganizationNotFound, phoneNumber)
		}
		return nil, fmt.Errorf("failed to get organization by phone number: %w", err)
	}

	return &org, nil
}

// GetByClerkUserID retrieves an organization by its tenant auth identity
func (r *GormOrganizationRepository) GetByClerkUserID(ctx context.Context, clerkUserID string) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).First(&org, "clerk_user_id = ?", clerkUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrOrganizationNotFound, clerkUserID)
		}
		return nil, fmt.Errorf("failed to get organization by user: %w", err)
	}

	return &org, nil
}

// GetNotificationTarget retrieves just the email and display name used for
// the post-call summary email.
func (r *GormOrganizationRepository) GetNotificationTarget(ctx context.Context, id string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get organization notification target: %w", err)
	}

	return &org, nil
}

// Update applies a settings-dashboard update to the caller's organization
func (r *GormOrganizationRepository) Update(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).First(&org, "clerk_user_id = ?", clerkUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrOrganizationNotFound, clerkUserID)
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	// Build update map
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.OpeningLine != nil {
		updates["opening_line"] = *req.OpeningLine
	}
	if req.QualificationQs != nil {
		updates["qualification_qs"] = *req.QualificationQs
	}
	if req.VoiceConfig != nil {
		updates["voice_config"] = *req.VoiceConfig
	}

	if len(updates) == 0 {
		return &org, nil // No changes
	}

	if err := r.db.WithContext(ctx).Model(&org).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return &org, nil
}
