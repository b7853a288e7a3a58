package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/thavon/voice-lead-service/internal/cache"
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
)

// OrganizationHandler serves the tenant settings dashboard
type OrganizationHandler struct {
	orgRepo  repository.OrganizationRepository
	orgCache *cache.OrgLookupCache
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgRepo repository.OrganizationRepository, orgCache *cache.OrgLookupCache) *OrganizationHandler {
	return &OrganizationHandler{
		orgRepo:  orgRepo,
		orgCache: orgCache,
	}
}

// SetupOrganizationRoutes registers the organization endpoints on the
// authenticated API subrouter.
func (h *OrganizationHandler) SetupOrganizationRoutes(router *mux.Router) {
	router.HandleFunc("/organization", h.GetOrganization).Methods("GET")
	router.HandleFunc("/organization", h.UpdateOrganization).Methods("PUT")
}

// GetOrganization godoc
// @Summary Get the authenticated tenant's settings
// @Tags organization
// @Produce json
// @Success 200 {object} domain.Organization "Organization settings"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/organization [get]
func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgRepo.GetByClerkUserID(r.Context(), ClerkUserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization")
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// UpdateOrganization godoc
// @Summary Update the authenticated tenant's settings
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags organization
// @Accept json
// @Produce json
// @Success 200 {object} domain.Organization "Updated settings"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /api/organization [put]
func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.orgRepo.Update(r.Context(), ClerkUserID(r.Context()), &req)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update organization")
		return
	}

	// New settings must reach the next inbound call immediately
	h.orgCache.Invalidate(r.Context(), org.PhoneNumber)

	writeJSON(w, http.StatusOK, org)
}
