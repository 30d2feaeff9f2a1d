package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// respondWithAppError maps the closed error kinds onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeForbidden, apperrors.ErrorTypePendingApproval:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		case apperrors.ErrorTypeDuplicateEmail, apperrors.ErrorTypeAlreadyRated:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeInvalidCredentials:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeInvalidFormat, apperrors.ErrorTypeInvalidRating:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// bearerToken extracts the session token carried by the caller. The store
// never transports tokens itself; they arrive on each request.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
