package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpadapter "github.com/thavon/voice-lead-service/internal/adapters/http"
	"github.com/thavon/voice-lead-service/internal/assistant"
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/prompts"
	"github.com/thavon/voice-lead-service/pkg/usage"
)

func wireOutboundLead(repos *mockRepoManager) {
	repos.orgRepo.GetByClerkUserIDFunc = func(ctx context.Context, clerkUserID string) (*domain.Organization, error) {
		return &domain.Organization{
			ID:                "org-1",
			Name:              "Acme Realty",
			Plan:              domain.PlanCore,
			VapiPhoneNumberID: "pn-1",
		}, nil
	}
	repos.leadRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Lead, error) {
		return &domain.Lead{
			ID:    id,
			OrgID: "org-1",
			Name:  "Jordan Smith",
			Phone: "+15550001111",
		}, nil
	}
}

func newOutboundHandler(repos *mockRepoManager, vapiURL string) *OutboundCallHandler {
	return NewOutboundCallHandler(
		repos,
		usage.NewService(repos.callLogRepo),
		assistant.NewBuilder(prompts.NewGenerator()),
		httpadapter.NewVapiClient("test-key", vapiURL),
		"",
	)
}

func postOutbound(t *testing.T, h *OutboundCallHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/calls/outbound", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.CreateOutboundCall(rec, req)
	return rec
}

func TestCreateOutboundCall_Success(t *testing.T) {
	vapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/call/phone", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "pn-1", reqBody["phoneNumberId"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "call-99", "status": "queued"})
	}))
	defer vapi.Close()

	repos := newMockRepoManager()
	wireOutboundLead(repos)

	marked := false
	repos.leadRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error {
		marked = true
		assert.Equal(t, domain.LeadStatusAttempted, status)
		return nil
	}

	rec := postOutbound(t, newOutboundHandler(repos, vapi.URL), map[string]string{"leadId": "lead-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "call-99")
	assert.True(t, marked)
}

func TestCreateOutboundCall_MissingLeadID(t *testing.T) {
	rec := postOutbound(t, newOutboundHandler(newMockRepoManager(), "http://unused"), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOutboundCall_LeadFromAnotherTenant(t *testing.T) {
	repos := newMockRepoManager()
	wireOutboundLead(repos)
	repos.leadRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Lead, error) {
		return &domain.Lead{ID: id, OrgID: "someone-else", Phone: "+15550001111"}, nil
	}

	rec := postOutbound(t, newOutboundHandler(repos, "http://unused"), map[string]string{"leadId": "lead-1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOutboundCall_OverPlanLimit(t *testing.T) {
	repos := newMockRepoManager()
	wireOutboundLead(repos)
	repos.callLogRepo.SumDurationSinceFunc = func(ctx context.Context, orgID string, since, until time.Time) (int64, error) {
		return 500 * 60, nil
	}

	rec := postOutbound(t, newOutboundHandler(repos, "http://unused"), map[string]string{"leadId": "lead-1"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "limit")
}

func TestCreateOutboundCall_PlatformRejectionLeavesLeadUntouched(t *testing.T) {
	vapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid phone number"}`, http.StatusBadRequest)
	}))
	defer vapi.Close()

	repos := newMockRepoManager()
	wireOutboundLead(repos)

	marked := false
	repos.leadRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.LeadStatus, lastCall time.Time) error {
		marked = true
		return nil
	}

	rec := postOutbound(t, newOutboundHandler(repos, vapi.URL), map[string]string{"leadId": "lead-1"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, marked)

	// The platform's rejection text rides along for diagnosis
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "invalid phone number")
}

func TestCreateOutboundCall_NoPhoneNumberConfigured(t *testing.T) {
	repos := newMockRepoManager()
	wireOutboundLead(repos)
	repos.orgRepo.GetByClerkUserIDFunc = func(ctx context.Context, clerkUserID string) (*domain.Organization, error) {
		return &domain.Organization{ID: "org-1", Plan: domain.PlanCore}, nil
	}

	rec := postOutbound(t, newOutboundHandler(repos, "http://unused"), map[string]string{"leadId": "lead-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTestCall(t *testing.T) {
	vapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/call", r.URL.Path)

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		// Test calls carry no telephony leg
		assert.Nil(t, reqBody["customer"])

		json.NewEncoder(w).Encode(map[string]string{"id": "web-call-1"})
	}))
	defer vapi.Close()

	repos := newMockRepoManager()
	wireOutboundLead(repos)

	req := httptest.NewRequest(http.MethodPost, "/api/calls/test", nil)
	rec := httptest.NewRecorder()
	newOutboundHandler(repos, vapi.URL).CreateTestCall(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "web-call-1")
}
