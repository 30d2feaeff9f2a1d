package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
)

// CompanyHandler handles company applications, company info updates and
// company-level reviews.
type CompanyHandler struct {
	identity  *services.IdentityService
	companies *services.CompanyService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(identity *services.IdentityService, companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{identity: identity, companies: companies}
}

// SubmitApplication handles POST /api/companies/applications
func (h *CompanyHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	app, err := h.companies.SubmitApplication(r.Context(), services.CompanyApplicationInput{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
		ManagerID:   user.ID,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, app)
}

// UpdateInfo handles PATCH /api/companies/{id}
func (h *CompanyHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	companyID := r.PathValue("id")
	if user.Role != entities.RoleAdmin && user.CompanyID != companyID {
		respondWithError(w, http.StatusForbidden, "only the company manager can update company info")
		return
	}

	var payload struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	company, err := h.companies.UpdateInfo(r.Context(), companyID, services.CompanyPatch{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, company)
}

// CreateReview handles POST /api/companies/{id}/reviews
func (h *CompanyHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.companies.CreateReview(r.Context(), services.ReviewInput{
		UserID:    user.ID,
		CompanyID: r.PathValue("id"),
		Rating:    payload.Rating,
		Text:      payload.Text,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

// AddReviewReply handles POST /api/reviews/{id}/replies
func (h *CompanyHandler) AddReviewReply(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	reply, err := h.companies.AddReviewReply(r.Context(), r.PathValue("id"), user.ID, payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, reply)
}

// VoteReview handles POST /api/reviews/{id}/vote
func (h *CompanyHandler) VoteReview(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		IsLike bool `json:"isLike"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.companies.VoteReview(r.Context(), r.PathValue("id"), user.ID, payload.IsLike); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "voted"})
}

// FlagReview handles POST /api/reviews/{id}/flag
func (h *CompanyHandler) FlagReview(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.companies.FlagReview(r.Context(), r.PathValue("id"), payload.Reason); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "flagged"})
}
