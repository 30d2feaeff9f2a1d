package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
)

// CatalogHandler handles service posts: CRUD, search and the engagement
// endpoints (views, likes, shares, ratings, comments).
type CatalogHandler struct {
	identity  *services.IdentityService
	catalog   *services.CatalogService
	reactions *services.ReactionService
	search    *services.SearchService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(
	identity *services.IdentityService,
	catalog *services.CatalogService,
	reactions *services.ReactionService,
	search *services.SearchService,
) *CatalogHandler {
	return &CatalogHandler{identity: identity, catalog: catalog, reactions: reactions, search: search}
}

type serviceRequest struct {
	Sections []entities.Section `json:"sections"`
	Images   []string           `json:"images"`
	Tags     string             `json:"tags"`
}

// Create handles POST /api/services
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	svc, err := h.catalog.Create(r.Context(), services.ServiceInput{
		OwnerID:  user.ID,
		Sections: payload.Sections,
		Images:   payload.Images,
		Tags:     payload.Tags,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, svc)
}

// Get handles GET /api/services/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.Get(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, svc)
}

// Search handles GET /api/services?q=keywords
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.search.Search(r.URL.Query().Get("q"))
	respondWithJSON(w, http.StatusOK, results)
}

// ListByCompany handles GET /api/companies/{id}/services
func (h *CatalogHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.ListByCompany(r.PathValue("id"))
	if out == nil {
		out = []*entities.Service{}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// Update handles PATCH /api/services/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Sections *[]entities.Section `json:"sections"`
		Images   *[]string           `json:"images"`
		Tags     *string             `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	svc, err := h.catalog.Update(r.Context(), r.PathValue("id"), user.ID, services.ServicePatch{
		Sections: payload.Sections,
		Images:   payload.Images,
		Tags:     payload.Tags,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, svc)
}

// Delete handles DELETE /api/services/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.catalog.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RecordView handles POST /api/services/{id}/view
func (h *CatalogHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.catalog.IncrementViews(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// ToggleLike handles POST /api/services/{id}/like
func (h *CatalogHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.catalog.ToggleLike(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "toggled"})
}

// RecordShare handles POST /api/services/{id}/share
func (h *CatalogHandler) RecordShare(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RecordShare(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// Rate handles POST /api/services/{id}/rating
func (h *CatalogHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Stars int `json:"stars"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.reactions.RateService(r.Context(), r.PathValue("id"), user.ID, payload.Stars); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "rated"})
}

// AddComment handles POST /api/services/{id}/comments
func (h *CatalogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	comment, err := h.reactions.AddComment(r.Context(), r.PathValue("id"), user.ID, payload.Text, payload.Rating)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment)
}
