package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/pkg/usage"
)

// CallLogHandler serves call history and usage reporting
type CallLogHandler struct {
	repos        repository.RepositoryManager
	usageService *usage.Service
}

// NewCallLogHandler creates a new call log handler
func NewCallLogHandler(repos repository.RepositoryManager, usageService *usage.Service) *CallLogHandler {
	return &CallLogHandler{
		repos:        repos,
		usageService: usageService,
	}
}

// SetupCallLogRoutes registers the call history endpoints on the
// authenticated API subrouter.
func (h *CallLogHandler) SetupCallLogRoutes(router *mux.Router) {
	router.HandleFunc("/calls", h.ListCalls).Methods("GET")
	router.HandleFunc("/usage", h.GetUsage).Methods("GET")
}

// ListCalls godoc
// @Summary List the tenant's recent calls
// @Tags calls
// @Produce json
// @Param limit query int false "Maximum rows to return (default 100)"
// @Success 200 {array} domain.CallLog "Call logs, newest first"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/calls [get]
func (h *CallLogHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	org, err := h.repos.Organization().GetByClerkUserID(r.Context(), ClerkUserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.repos.CallLog().GetByOrgID(r.Context(), org.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load call logs")
		return
	}
	if logs == nil {
		logs = []*domain.CallLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

// GetUsage godoc
// @Summary Current month's call-time usage against the plan limit
// @Tags usage
// @Produce json
// @Success 200 {object} usage.Summary "Usage summary"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/usage [get]
func (h *CallLogHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	org, err := h.repos.Organization().GetByClerkUserID(r.Context(), ClerkUserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	_, summary, err := h.usageService.CheckUsageLimit(r.Context(), org)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute usage")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
