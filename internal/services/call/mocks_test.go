package call

import (
	"context"
	"errors"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
)

var errMockNotFound = errors.New("not found")

// MockOrganizationRepository implements repository.OrganizationRepository
type MockOrganizationRepository struct {
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Organization, error)
	GetByPhoneNumberFunc      func(ctx context.Context, phoneNumber string) (*domain.Organization, error)
	GetByClerkUserIDFunc      func(ctx context.Context, clerkUserID string) (*domain.Organization, error)
	GetNotificationTargetFunc func(ctx context.Context, id string) (*domain.Organization, error)
	UpdateFunc                func(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockOrganizationRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Organization, error) {
	if m.GetByPhoneNumberFunc != nil {
		return m.GetByPhoneNumberFunc(ctx, phoneNumber)
	}
	return nil, errMockNotFound
}

func (m *MockOrganizationRepository) GetByClerkUserID(ctx context.Context, clerkUserID string) (*domain.Organization, error) {
	if m.GetByClerkUserIDFunc != nil {
		return m.GetByClerkUserIDFunc(ctx, clerkUserID)
	}
	return nil, errMockNotFound
}

func (m *MockOrganizationRepository) GetNotificationTarget(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetNotificationTargetFunc != nil {
		return m.GetNotificationTargetFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockOrganizationRepository) Update(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, clerkUserID, req)
	}
	return nil, errMockNotFound
}

// MockLeadRepository implements repository.LeadRepository
type MockLeadRepository struct {
	CreateFunc       func(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Lead, error)
	GetByOrgIDFunc   func(ctx context.Context, orgID string) ([]*domain.Lead, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, lead)
	}
	return lead, nil
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockLeadRepository) GetByOrgID(ctx context.Context, orgID string) ([]*domain.Lead, error) {
	if m.GetByOrgIDFunc != nil {
		return m.GetByOrgIDFunc(ctx, orgID)
	}
	return nil, nil
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, lastCall)
	}
	return nil
}

// MockCallLogRepository implements repository.CallLogRepository
type MockCallLogRepository struct {
	CreateFunc           func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error)
	GetByOrgIDFunc       func(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error)
	SumDurationSinceFunc func(ctx context.Context, orgID string, since, until time.Time) (int64, error)
}

func (m *MockCallLogRepository) Create(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return log, nil
}

func (m *MockCallLogRepository) GetByOrgID(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error) {
	if m.GetByOrgIDFunc != nil {
		return m.GetByOrgIDFunc(ctx, orgID, limit)
	}
	return nil, nil
}

func (m *MockCallLogRepository) SumDurationSince(ctx context.Context, orgID string, since, until time.Time) (int64, error) {
	if m.SumDurationSinceFunc != nil {
		return m.SumDurationSinceFunc(ctx, orgID, since, until)
	}
	return 0, nil
}

// MockRepositoryManager implements repository.RepositoryManager
type MockRepositoryManager struct {
	OrgRepo     *MockOrganizationRepository
	LeadRepo    *MockLeadRepository
	CallLogRepo *MockCallLogRepository
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		OrgRepo:     &MockOrganizationRepository{},
		LeadRepo:    &MockLeadRepository{},
		CallLogRepo: &MockCallLogRepository{},
	}
}

func (m *MockRepositoryManager) Organization() repository.OrganizationRepository { return m.OrgRepo }
func (m *MockRepositoryManager) Lead() repository.LeadRepository                 { return m.LeadRepo }
func (m *MockRepositoryManager) CallLog() repository.CallLogRepository           { return m.CallLogRepo }
func (m *MockRepositoryManager) Ping(ctx context.Context) error                  { return nil }
func (m *MockRepositoryManager) Close() error                                    { return nil }

// MockNotificationSender implements NotificationSender
type MockNotificationSender struct {
	SendFunc func(ctx context.Context, to, subject, htmlBody string) error
}

func (m *MockNotificationSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, htmlBody)
	}
	return nil
}
