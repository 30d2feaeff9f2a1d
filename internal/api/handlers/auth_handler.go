package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
)

// AuthHandler handles registration, login and session resolution.
type AuthHandler struct {
	identity *services.IdentityService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	ManagerName string `json:"managerName"`
	CompanyName string `json:"companyName"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.identity.Register(r.Context(), services.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		Role:        entities.Role(payload.Role),
		ManagerName: payload.ManagerName,
		CompanyName: payload.CompanyName,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if result.Application != nil {
		respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":        "pending approval",
			"applicationId": result.Application.ID,
		})
		return
	}
	respondWithJSON(w, http.StatusCreated, sanitizeUser(result.User))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	session, user, err := h.identity.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": session.Token,
		"user":  sanitizeUser(user),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context(), bearerToken(r)); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondWithJSON(w, http.StatusOK, sanitizeUser(user))
}

// sanitizeUser strips the credential hash before a user leaves the API.
func sanitizeUser(u *entities.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"role":       u.Role,
		"isApproved": u.IsApproved,
		"companyId":  u.CompanyID,
		"createdAt":  u.CreatedAt,
	}
}
