package handlers

import (
	"io"
	"net/http"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
)

// AdminHandler handles the approval queues and the document-level store
// operations (export, import, reset). Every endpoint requires the admin role.
type AdminHandler struct {
	identity  *services.IdentityService
	companies *services.CompanyService
	store     *store.Store
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(identity *services.IdentityService, companies *services.CompanyService, st *store.Store) *AdminHandler {
	return &AdminHandler{identity: identity, companies: companies, store: st}
}

// requireAdmin resolves the caller and writes the failure response itself
// when the caller is missing or not an admin.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) *entities.User {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}
	if user.Role != entities.RoleAdmin {
		respondWithError(w, http.StatusForbidden, "admin role required")
		return nil
	}
	return user
}

// ListManagerApplications handles GET /api/admin/manager-applications
func (h *AdminHandler) ListManagerApplications(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	apps := h.identity.ManagerApplications()
	if apps == nil {
		apps = []*entities.ManagerApplication{}
	}
	respondWithJSON(w, http.StatusOK, apps)
}

// ApproveManager handles POST /api/admin/manager-applications/{id}/approve
func (h *AdminHandler) ApproveManager(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	user, company, err := h.identity.ApproveManager(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":    sanitizeUser(user),
		"company": company,
	})
}

// RejectManager handles POST /api/admin/manager-applications/{id}/reject
func (h *AdminHandler) RejectManager(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if err := h.identity.RejectManager(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// ListCompanyApplications handles GET /api/admin/company-applications
func (h *AdminHandler) ListCompanyApplications(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	apps := h.companies.PendingApplications()
	if apps == nil {
		apps = []*entities.CompanyApplication{}
	}
	respondWithJSON(w, http.StatusOK, apps)
}

// ApproveCompanyApplication handles POST /api/admin/company-applications/{id}/approve
func (h *AdminHandler) ApproveCompanyApplication(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	company, err := h.companies.ApproveApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, company)
}

// Export handles GET /api/admin/store/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	doc, err := h.store.Export()
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="reviewhub-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// Import handles POST /api/admin/store/import
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	doc, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := h.store.Import(r.Context(), doc); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// Reset handles POST /api/admin/store/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if err := h.store.Reset(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
