package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

// LeadHandler serves the tenant's lead list and bulk import
type LeadHandler struct {
	repos repository.RepositoryManager
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(repos repository.RepositoryManager) *LeadHandler {
	return &LeadHandler{repos: repos}
}

// SetupLeadRoutes registers the lead endpoints on the authenticated API
// subrouter.
func (h *LeadHandler) SetupLeadRoutes(router *mux.Router) {
	router.HandleFunc("/leads", h.ListLeads).Methods("GET")
	router.HandleFunc("/leads", h.ImportLeads).Methods("POST")
}

// ListLeads godoc
// @Summary List the tenant's leads
// @Tags leads
// @Produce json
// @Success 200 {array} domain.Lead "Leads, newest first"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/leads [get]
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	org, err := h.repos.Organization().GetByClerkUserID(r.Context(), ClerkUserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	leads, err := h.repos.Lead().GetByOrgID(r.Context(), org.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leads")
		return
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

// ImportLeads godoc
// @Summary Bulk import leads
// @Description Accepts a JSON array of leads; entries without a phone number are skipped
// @Tags leads
// @Accept json
// @Produce json
// @Param leads body []domain.ImportLeadRequest true "Leads to import"
// @Success 200 {object} map[string]int "Count of imported leads"
// @Failure 400 {object} map[string]string "Body is not a JSON array"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/leads [post]
func (h *LeadHandler) ImportLeads(w http.ResponseWriter, r *http.Request) {
	var entries []domain.ImportLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON array of leads")
		return
	}

	org, err := h.repos.Organization().GetByClerkUserID(r.Context(), ClerkUserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	imported := 0
	for _, entry := range entries {
		if entry.Phone == "" {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "Unknown"
		}
		lead := &domain.Lead{
			OrgID:   org.ID,
			Name:    name,
			Phone:   entry.Phone,
			Address: entry.Address,
			Status:  domain.LeadStatusNew,
		}
		if _, err := h.repos.Lead().Create(r.Context(), lead); err != nil {
			logger.Base().Error("failed to import lead",
				zap.String("org_id", org.ID),
				zap.String("phone", entry.Phone),
				zap.Error(err),
			)
			continue
		}
		imported++
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
