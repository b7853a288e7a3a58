package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	httpadapter "github.com/thavon/voice-lead-service/internal/adapters/http"
	"github.com/thavon/voice-lead-service/internal/assistant"
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"github.com/thavon/voice-lead-service/pkg/usage"
	"go.uber.org/zap"
)

// OutboundCallHandler triggers outbound and test calls through the voice
// platform on behalf of the authenticated tenant.
type OutboundCallHandler struct {
	repos              repository.RepositoryManager
	usageService       *usage.Service
	builder            *assistant.Builder
	vapiClient         *httpadapter.VapiClient
	fallbackPhoneNumID string
}

// NewOutboundCallHandler creates a new outbound call handler
func NewOutboundCallHandler(repos repository.RepositoryManager, usageService *usage.Service, builder *assistant.Builder, vapiClient *httpadapter.VapiClient, fallbackPhoneNumID string) *OutboundCallHandler {
	return &OutboundCallHandler{
		repos:              repos,
		usageService:       usageService,
		builder:            builder,
		vapiClient:         vapiClient,
		fallbackPhoneNumID: fallbackPhoneNumID,
	}
}

// SetupOutboundCallRoutes registers the call-trigger endpoints on the
// authenticated API subrouter.
func (h *OutboundCallHandler) SetupOutboundCallRoutes(router *mux.Router) {
	router.HandleFunc("/calls/outbound", h.CreateOutboundCall).Methods("POST")
	router.HandleFunc("/calls/test", h.CreateTestCall).Methods("POST")
}

type outboundCallRequest struct {
	LeadID string `json:"leadId"`
}

type outboundCallResponse struct {
	Success bool   `json:"success"`
	CallID  string `json:"callId"`
	Message string `json:"message"`
}

// CreateOutboundCall godoc
// @Summary Trigger an outbound call to a lead
// @Description Places a call from the tenant's number with a lead-personalized assistant
// @Tags calls
// @Accept json
// @Produce json
// @Param request body outboundCallRequest true "Outbound call request"
// @Success 200 {object} outboundCallResponse "Call created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Monthly limit reached"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 502 {object} map[string]string "Voice platform rejected the call"
// @Router /api/calls/outbound [post]
func (h *OutboundCallHandler) CreateOutboundCall(w http.ResponseWriter, r *http.Request) {
	userID := ClerkUserID(r.Context())

	var req outboundCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
		writeError(w, http.StatusBadRequest, "leadId is required")
		return
	}

	// Organization and lead reads are independent
	var (
		wg      sync.WaitGroup
		org     *domain.Organization
		lead    *domain.Lead
		orgErr  error
		leadErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		org, orgErr = h.repos.Organization().GetByClerkUserID(r.Context(), userID)
	}()
	go func() {
		defer wg.Done()
		lead, leadErr = h.repos.Lead().GetByID(r.Context(), req.LeadID)
	}()
	wg.Wait()

	if orgErr != nil {
		if errors.Is(orgErr, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}
	if leadErr != nil || lead.OrgID != org.ID {
		// A lead belonging to another tenant looks identical to a missing one
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	phoneNumberID := org.VapiPhoneNumberID
	if phoneNumberID == "" {
		phoneNumberID = h.fallbackPhoneNumID
	}
	if phoneNumberID == "" {
		writeError(w, http.StatusBadRequest, "no outbound phone number configured")
		return
	}

	allowed, summary, err := h.usageService.CheckUsageLimit(r.Context(), org)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check usage")
		return
	}
	if !allowed {
		logger.Base().Info("outbound call blocked by plan limit",
			zap.String("org_id", org.ID),
			zap.String("plan", summary.Plan),
			zap.Int64("used_seconds", summary.UsedSeconds),
			zap.Int64("limit_seconds", summary.LimitSeconds),
		)
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"error": "monthly call limit reached",
			"usage": summary,
		})
		return
	}

	spec := h.builder.BuildOutbound(org, lead)
	ref, err := h.vapiClient.CreateCall(r.Context(), phoneNumberID, httpadapter.Customer{
		Number: lead.Phone,
		Name:   lead.Name,
	}, spec)
	if err != nil {
		// The lead's status is deliberately untouched: the call never happened
		var upstream *httpadapter.UpstreamError
		if errors.As(err, &upstream) {
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error":  "voice platform rejected the call",
				"detail": upstream.Body,
			})
			return
		}
		writeError(w, http.StatusBadGateway, "failed to reach voice platform")
		return
	}

	// The platform accepted the call; mark the attempt. A failure here is
	// logged but does not undo the call.
	if err := h.repos.Lead().UpdateStatus(r.Context(), lead.ID, domain.LeadStatusAttempted, time.Now()); err != nil {
		logger.Base().Error("failed to mark lead attempted",
			zap.String("lead_id", lead.ID),
			zap.Error(err),
		)
	}

	writeJSON(w, http.StatusOK, outboundCallResponse{
		Success: true,
		CallID:  ref.ID,
		Message: "Call initiated",
	})
}

// CreateTestCall godoc
// @Summary Start a browser test call
// @Description Creates a web call with the tenant's current configuration, no telephony leg
// @Tags calls
// @Produce json
// @Success 200 {object} outboundCallResponse "Test call created"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 502 {object} map[string]string "Voice platform rejected the call"
// @Router /api/calls/test [post]
func (h *OutboundCallHandler) CreateTestCall(w http.ResponseWriter, r *http.Request) {
	userID := ClerkUserID(r.Context())

	org, err := h.repos.Organization().GetByClerkUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	ref, err := h.vapiClient.CreateTestCall(r.Context(), h.builder.BuildTestCall(org))
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to create test call")
		return
	}

	writeJSON(w, http.StatusOK, outboundCallResponse{
		Success: true,
		CallID:  ref.ID,
		Message: "Test call created",
	})
}
