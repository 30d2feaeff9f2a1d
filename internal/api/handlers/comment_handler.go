package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/reviewhub/backend/internal/application/services"
)

// CommentHandler handles comment replies and the like/dislike toggles on
// comments and replies.
type CommentHandler struct {
	identity  *services.IdentityService
	comments  *services.CommentService
	reactions *services.ReactionService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(
	identity *services.IdentityService,
	comments *services.CommentService,
	reactions *services.ReactionService,
) *CommentHandler {
	return &CommentHandler{identity: identity, comments: comments, reactions: reactions}
}

// Get handles GET /api/comments/{id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.CommentByID(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, comment)
}

// AddReply handles POST /api/comments/{id}/replies
func (h *CommentHandler) AddReply(w http.ResponseWriter, r *http.Request) {
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
	reply, err := h.comments.AddReply(r.Context(), r.PathValue("id"), user.ID, payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, reply)
}

// ToggleCommentLike handles POST /api/comments/{id}/like
func (h *CommentHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reactions.ToggleCommentLike)
}

// ToggleCommentDislike handles POST /api/comments/{id}/dislike
func (h *CommentHandler) ToggleCommentDislike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reactions.ToggleCommentDislike)
}

// ToggleReplyLike handles POST /api/replies/{id}/like
func (h *CommentHandler) ToggleReplyLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reactions.ToggleReplyLike)
}

// ToggleReplyDislike handles POST /api/replies/{id}/dislike
func (h *CommentHandler) ToggleReplyDislike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reactions.ToggleReplyDislike)
}

func (h *CommentHandler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, userID string) error) {
	user := h.identity.CurrentUser(bearerToken(r))
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := fn(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "toggled"})
}
