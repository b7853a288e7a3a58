package repository

import (
	"context"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"gorm.io/gorm"
)

// OrganizationRepository defines the interface for organization operations
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Organization, error)
	GetByClerkUserID(ctx context.Context, clerkUserID string) (*domain.Organization, error)
	GetNotificationTarget(ctx context.Context, id string) (*domain.Organization, error)
	Update(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error)
}

// LeadRepository defines the interface for lead operations
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	GetByOrgID(ctx context.Context, orgID string) ([]*domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error
}

// CallLogRepository defines the interface for call log operations.
// Call logs are append-only; there is deliberately no update method.
type CallLogRepository interface {
	Create(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error)
	GetByOrgID(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error)
	SumDurationSince(ctx context.Context, orgID string, since, until time.Time) (int64, error)
}

// RepositoryManager combines all repositories
type RepositoryManager interface {
	Organization() OrganizationRepository
	Lead() LeadRepository
	CallLog() CallLogRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connection
	Close() error
}

// GormRepositoryManager implements RepositoryManager using GORM
type GormRepositoryManager struct {
	db          *gorm.DB
	orgRepo     *GormOrganizationRepository
	leadRepo    *GormLeadRepository
	callLogRepo *GormCallLogRepository
}

// NewGormRepositoryManager creates a new GORM repository manager
func NewGormRepositoryManager(db *gorm.DB) *GormRepositoryManager {
	return &GormRepositoryManager{
		db:          db,
		orgRepo:     NewGormOrganizationRepository(db),
		leadRepo:    NewGormLeadRepository(db),
		callLogRepo: NewGormCallLogRepository(db),
	}
}

// Organization returns the organization repository
func (m *GormRepositoryManager) Organization() OrganizationRepository {
	return m.orgRepo
}

// Lead returns the lead repository
func (m *GormRepositoryManager) Lead() LeadRepository {
	return m.leadRepo
}

// CallLog returns the call log repository
func (m *GormRepositoryManager) CallLog() CallLogRepository {
	return m.callLogRepo
}

// Ping checks the database connection
func (m *GormRepositoryManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (m *GormRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
