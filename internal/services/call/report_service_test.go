package call

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thavon/voice-lead-service/internal/domain"
)

func outboundReport() *WebhookMessage {
	return &WebhookMessage{
		Type: EventEndOfCallReport,
		Call: &CallPayload{
			ID:              "call-123",
			Status:          "ended",
			DurationSeconds: 185,
			Metadata: &CallMetadata{
				OrgID:    "org-1",
				LeadID:   "lead-1",
				CallType: "outbound",
			},
		},
		Analysis: &AnalysisPayload{
			Summary: "Owner agreed to a valuation appointment.",
			StructuredData: &StructuredAnalysis{
				AppointmentBooked: boolPtr(true),
			},
		},
		Transcript:   "AI: Hi...\nUser: Sure.",
		RecordingURL: "https://recordings.example.com/call-123.wav",
	}
}

func TestProcessEndOfCallReport_PersistsAndNotifies(t *testing.T) {
	repos := NewMockRepositoryManager()

	var (
		mu        sync.Mutex
		created   []*domain.CallLog
		newStatus domain.LeadStatus
		lastCall  time.Time
		sentTo    string
	)

	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		mu.Lock()
		defer mu.Unlock()
		created = append(created, log)
		return log, nil
	}
	repos.LeadRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.LeadStatus, last time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		newStatus = status
		lastCall = last
		return nil
	}
	repos.OrgRepo.GetNotificationTargetFunc = func(ctx context.Context, id string) (*domain.Organization, error) {
		return &domain.Organization{ID: id, Name: "Acme Realty", Email: "owner@acme.test"}, nil
	}

	notify := &MockNotificationSender{
		SendFunc: func(ctx context.Context, to, subject, htmlBody string) error {
			mu.Lock()
			defer mu.Unlock()
			sentTo = to
			assert.Contains(t, subject, "New Call Summary")
			assert.Contains(t, htmlBody, "Owner agreed to a valuation appointment.")
			assert.Contains(t, htmlBody, string(domain.LeadStatusQualified))
			assert.Contains(t, htmlBody, "call-123.wav")
			return nil
		},
	}

	service := NewReportService(repos, notify)
	service.ProcessEndOfCallReport(context.Background(), outboundReport())

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, created, 1)
	entry := created[0]
	assert.Equal(t, "org-1", entry.OrgID)
	require.NotNil(t, entry.LeadID)
	assert.Equal(t, "lead-1", *entry.LeadID)
	assert.Equal(t, "call-123", entry.ExternalCallID)
	assert.Equal(t, 185, entry.Duration)
	require.NotNil(t, entry.Outcome)
	assert.Equal(t, domain.CallOutcomeBooked, *entry.Outcome)

	assert.Equal(t, domain.LeadStatusQualified, newStatus)
	assert.False(t, lastCall.IsZero())
	assert.Equal(t, "owner@acme.test", sentTo)
}

func TestProcessEndOfCallReport_InboundSkipsLeadUpdate(t *testing.T) {
	repos := NewMockRepositoryManager()

	leadUpdated := false
	repos.LeadRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.LeadStatus, last time.Time) error {
		leadUpdated = true
		return nil
	}
	repos.OrgRepo.GetNotificationTargetFunc = func(ctx context.Context, id string) (*domain.Organization, error) {
		return &domain.Organization{ID: id, Email: "owner@acme.test"}, nil
	}

	msg := outboundReport()
	msg.Call.Metadata = &CallMetadata{OrgID: "org-1", CallType: "inbound"}

	var htmlSeen string
	notify := &MockNotificationSender{
		SendFunc: func(ctx context.Context, to, subject, htmlBody string) error {
			htmlSeen = htmlBody
			return nil
		},
	}

	service := NewReportService(repos, notify)
	service.ProcessEndOfCallReport(context.Background(), msg)

	assert.False(t, leadUpdated)
	assert.Contains(t, htmlSeen, "N/A (inbound)")
}

func TestProcessEndOfCallReport_SendFailureIsSwallowed(t *testing.T) {
	repos := NewMockRepositoryManager()
	repos.OrgRepo.GetNotificationTargetFunc = func(ctx context.Context, id string) (*domain.Organization, error) {
		return &domain.Organization{ID: id, Email: "owner@acme.test"}, nil
	}

	notify := &MockNotificationSender{
		SendFunc: func(ctx context.Context, to, subject, htmlBody string) error {
			return errors.New("mail provider down")
		},
	}

	service := NewReportService(repos, notify)
	// Must not panic or propagate anything
	service.ProcessEndOfCallReport(context.Background(), outboundReport())
}

func TestProcessEndOfCallReport_StorageFailureStillNotifies(t *testing.T) {
	repos := NewMockRepositoryManager()
	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		return nil, errors.New("db down")
	}
	repos.OrgRepo.GetNotificationTargetFunc = func(ctx context.Context, id string) (*domain.Organization, error) {
		return &domain.Organization{ID: id, Email: "owner@acme.test"}, nil
	}

	sent := false
	notify := &MockNotificationSender{
		SendFunc: func(ctx context.Context, to, subject, htmlBody string) error {
			sent = true
			return nil
		},
	}

	service := NewReportService(repos, notify)
	service.ProcessEndOfCallReport(context.Background(), outboundReport())

	assert.True(t, sent)
}

func TestProcessEndOfCallReport_MissingOrgMetadataIsDropped(t *testing.T) {
	repos := NewMockRepositoryManager()

	createdCalls := 0
	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		createdCalls++
		return log, nil
	}

	msg := outboundReport()
	msg.Call.Metadata = nil

	service := NewReportService(repos, &MockNotificationSender{})
	service.ProcessEndOfCallReport(context.Background(), msg)

	assert.Zero(t, createdCalls)
}

func TestProcessEndOfCallReport_RoundsDurationToNearestSecond(t *testing.T) {
	repos := NewMockRepositoryManager()

	var (
		mu        sync.Mutex
		stored    *domain.CallLog
		newStatus domain.LeadStatus
	)
	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		mu.Lock()
		defer mu.Unlock()
		stored = log
		return log, nil
	}
	repos.LeadRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.LeadStatus, last time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		newStatus = status
		return nil
	}

	// 9.6s rounds to 10s, which clears the short-call threshold
	msg := outboundReport()
	msg.Call.DurationSeconds = 9.6
	msg.Analysis = nil

	service := NewReportService(repos, nil)
	service.ProcessEndOfCallReport(context.Background(), msg)

	mu.Lock()
	defer mu.Unlock()

	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.Duration)
	assert.Equal(t, domain.LeadStatusContacted, newStatus)
}

func TestProcessEndOfCallReport_DefaultsSummaryAndTranscript(t *testing.T) {
	repos := NewMockRepositoryManager()

	var (
		mu     sync.Mutex
		stored *domain.CallLog
	)
	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		mu.Lock()
		defer mu.Unlock()
		stored = log
		return log, nil
	}

	msg := outboundReport()
	msg.Analysis = nil
	msg.Transcript = ""

	service := NewReportService(repos, nil)
	service.ProcessEndOfCallReport(context.Background(), msg)

	mu.Lock()
	defer mu.Unlock()

	require.NotNil(t, stored)
	assert.Equal(t, "No summary available", stored.Summary)
	assert.Equal(t, "No transcript available", stored.Transcript)
}

func TestProcessEndOfCallReport_PrefersAssistantMetadata(t *testing.T) {
	repos := NewMockRepositoryManager()

	var seenOrg string
	repos.CallLogRepo.CreateFunc = func(ctx context.Context, log *domain.CallLog) (*domain.CallLog, error) {
		seenOrg = log.OrgID
		return log, nil
	}

	msg := outboundReport()
	msg.Call.Metadata = &CallMetadata{OrgID: "stale-org"}
	msg.Call.Assistant = &AssistantRef{Metadata: &CallMetadata{OrgID: "org-echo"}}

	service := NewReportService(repos, nil)
	service.ProcessEndOfCallReport(context.Background(), msg)

	assert.Equal(t, "org-echo", seenOrg)
}
