package handler

import (
	"context"
	"errors"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
)

var errMockNotFound = errors.New("not found")

type mockOrgRepo struct {
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Organization, error)
	GetByPhoneNumberFunc      func(ctx context.Context, phoneNumber string) (*domain.Organization, error)
	GetByClerkUserIDFunc      func(ctx context.Context, clerkUserID string) (*domain.Organization, error)
	GetNotificationTargetFunc func(ctx context.Context, id string) (*domain.Organization, error)
	UpdateFunc                func(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error)
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrOrganizationNotFound
}

func (m *mockOrgRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Organization, error) {
	if m.GetByPhoneNumberFunc != nil {
		return m.GetByPhoneNumberFunc(ctx, phoneNumber)
	}
	return nil, repository.ErrOrganizationNotFound
}

func (m *mockOrgRepo) GetByClerkUserID(ctx context.Context, clerkUserID string) (*domain.Organization, error) {
	if m.GetByClerkUserIDFunc != nil {
		return m.GetByClerkUserIDFunc(ctx, clerkUserID)
	}
	return nil, repository.ErrOrganizationNotFound
}

func (m *mockOrgRepo) GetNotificationTarget(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetNotificationTargetFunc != nil {
		return m.GetNotificationTargetFunc(ctx, id)
	}
	return nil, repository.ErrOrganizationNotFound
}

func (m *mockOrgRepo) Update(ctx context.Context, clerkUserID string, req *domain.UpdateOrganizationRequest) (*domain.Organization, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, clerkUserID, req)
	}
	return nil, repository.ErrOrganizationNotFound
}

type mockLeadRepo struct {
	CreateFunc       func(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Lead, error)
	GetByOrgIDFunc   func(ctx context.Context, orgID string) ([]*domain.Lead, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, lead)
	}
	return lead, nil
}

func (m *mockLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrLeadNotFound
}

func (m *mockLeadRepo) GetByOrgID(ctx context.Context, orgID string) ([]*domain.Lead, error) {
	if m.GetByOrgIDFunc != nil {
		return m.GetByOrgIDFunc(ctx, orgID)
	}
	return nil, nil
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, lastCall)
	}
	return nil
}

type mockCallLogRepo struct {
	CreateFunc           func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error)
	GetByOrgIDFunc       func(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error)
	SumDurationSinceFunc func(ctx context.Context, orgID string, since, until time.Time) (int64, error)
}

func (m *mockCallLogRepo) Create(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return log, nil
}

func (m *mockCallLogRepo) GetByOrgID(ctx context.Context, orgID string, limit int) ([]*domain.CallLog, error) {
	if m.GetByOrgIDFunc != nil {
		return m.GetByOrgIDFunc(ctx, orgID, limit)
	}
	return nil, nil
}

func (m *mockCallLogRepo) SumDurationSince(ctx context.Context, orgID string, since, until time.Time) (int64, error) {
	if m.SumDurationSinceFunc != nil {
		return m.SumDurationSinceFunc(ctx, orgID, since, until)
	}
	return 0, nil
}

type mockRepoManager struct {
	orgRepo     *mockOrgRepo
	leadRepo    *mockLeadRepo
	callLogRepo *mockCallLogRepo
}

func newMockRepoManager() *mockRepoManager {
	return &mockRepoManager{
		orgRepo:     &mockOrgRepo{},
		leadRepo:    &mockLeadRepo{},
		callLogRepo: &mockCallLogRepo{},
	}
}

func (m *mockRepoManager) Organization() repository.OrganizationRepository { return m.orgRepo }
func (m *mockRepoManager) Lead() repository.LeadRepository                 { return m.leadRepo }
func (m *mockRepoManager) CallLog() repository.CallLogRepository           { return m.callLogRepo }
func (m *mockRepoManager) Ping(ctx context.Context) error                  { return nil }
func (m *mockRepoManager) Close() error                                    { return nil }
