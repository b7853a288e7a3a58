package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/thavon/voice-lead-service/internal/assistant"
	"github.com/thavon/voice-lead-service/internal/cache"
	"github.com/thavon/voice-lead-service/internal/services/call"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

// VapiWebhookHandler routes the voice platform's server messages. One public
// endpoint receives every event kind; the message type selects the handler.
type VapiWebhookHandler struct {
	orgCache      *cache.OrgLookupCache
	builder       *assistant.Builder
	reportService *call.ReportService

	dispatch map[string]func(http.ResponseWriter, *http.Request, *call.WebhookMessage)
}

// NewVapiWebhookHandler creates a new webhook handler
func NewVapiWebhookHandler(orgCache *cache.OrgLookupCache, builder *assistant.Builder, reportService *call.ReportService) *VapiWebhookHandler {
	h := &VapiWebhookHandler{
		orgCache:      orgCache,
		builder:       builder,
		reportService: reportService,
	}
	h.dispatch = map[string]func(http.ResponseWriter, *http.Request, *call.WebhookMessage){
		call.EventAssistantRequest: h.handleAssistantRequest,
		call.EventToolCalls:        h.handleToolCalls,
		call.EventEndOfCallReport:  h.handleEndOfCallReport,
	}
	return h
}

// SetupVapiWebhookRoutes registers the webhook endpoint
func (h *VapiWebhookHandler) SetupVapiWebhookRoutes(router *mux.Router) {
	router.HandleFunc("/vapi/webhook", h.HandleWebhook).Methods("POST")
}

// HandleWebhook godoc
// @Summary Voice platform webhook
// @Description Receives assistant-request, tool-calls and end-of-call-report events
// @Tags webhook
// @Accept json
// @Produce json
// @Router /vapi/webhook [post]
func (h *VapiWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var envelope call.WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid webhook body")
		return
	}

	msg := &envelope.Message
	if handle, ok := h.dispatch[msg.Type]; ok {
		handle(w, r, msg)
		return
	}

	// Unrecognized event kinds are acknowledged so the platform does not
	// retry them.
	logger.Base().Debug("ignoring webhook event", zap.String("type", msg.Type))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAssistantRequest synthesizes the assistant configuration for an
// incoming call. This is the latency-critical path: the caller is hearing
// ringing while this runs.
func (h *VapiWebhookHandler) handleAssistantRequest(w http.ResponseWriter, r *http.Request, msg *call.WebhookMessage) {
	if msg.Call == nil || msg.Call.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "missing call phone number")
		return
	}

	org, err := h.orgCache.GetByPhoneNumber(r.Context(), msg.Call.PhoneNumber)
	if err != nil {
		// Unknown or unreadable number: the caller still gets an answer, a
		// minimal assistant that apologizes and explains.
		logger.Base().Warn("no organization for inbound number, serving fallback",
			zap.String("phone_number", msg.Call.PhoneNumber),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, map[string]interface{}{"assistant": h.builder.Fallback()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assistant": h.builder.BuildInbound(org)})
}

// handleToolCalls executes a mid-call function batch and returns one result
// per entry.
func (h *VapiWebhookHandler) handleToolCalls(w http.ResponseWriter, _ *http.Request, msg *call.WebhookMessage) {
	results := call.ExecuteToolCalls(msg.ToolCalls)
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// handleEndOfCallReport ingests a completed call. The response is always a
// 200 acknowledgment; processing failures are logged, never surfaced, so the
// platform does not redeliver a report we already acted on.
func (h *VapiWebhookHandler) handleEndOfCallReport(w http.ResponseWriter, r *http.Request, msg *call.WebhookMessage) {
	h.reportService.ProcessEndOfCallReport(r.Context(), msg)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
