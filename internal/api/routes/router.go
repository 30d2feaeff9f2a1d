package routes

import (
	"net/http"

	"github.com/reviewhub/backend/internal/api/handlers"
	"github.com/reviewhub/backend/internal/api/middleware"
	"github.com/reviewhub/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	catalogHandler *handlers.CatalogHandler
	commentHandler *handlers.CommentHandler
	companyHandler *handlers.CompanyHandler
	adminHandler   *handlers.AdminHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	commentHandler *handlers.CommentHandler,
	companyHandler *handlers.CompanyHandler,
	adminHandler *handlers.AdminHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		authHandler:    authHandler,
		catalogHandler: catalogHandler,
		commentHandler: commentHandler,
		companyHandler: companyHandler,
		adminHandler:   adminHandler,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/me", r.authHandler.Me)

	// Service catalog endpoints
	r.mux.HandleFunc("GET /api/services", r.catalogHandler.Search)
	r.mux.HandleFunc("POST /api/services", r.catalogHandler.Create)
	r.mux.HandleFunc("GET /api/services/{id}", r.catalogHandler.Get)
	r.mux.HandleFunc("PATCH /api/services/{id}", r.catalogHandler.Update)
	r.mux.HandleFunc("DELETE /api/services/{id}", r.catalogHandler.Delete)

	// Service engagement endpoints
	r.mux.HandleFunc("POST /api/services/{id}/view", r.catalogHandler.RecordView)
	r.mux.HandleFunc("POST /api/services/{id}/like", r.catalogHandler.ToggleLike)
	r.mux.HandleFunc("POST /api/services/{id}/share", r.catalogHandler.RecordShare)
	r.mux.HandleFunc("POST /api/services/{id}/rating", r.catalogHandler.Rate)
	r.mux.HandleFunc("POST /api/services/{id}/comments", r.catalogHandler.AddComment)

	// Comment and reply endpoints
	r.mux.HandleFunc("GET /api/comments/{id}", r.commentHandler.Get)
	r.mux.HandleFunc("POST /api/comments/{id}/replies", r.commentHandler.AddReply)
	r.mux.HandleFunc("POST /api/comments/{id}/like", r.commentHandler.ToggleCommentLike)
	r.mux.HandleFunc("POST /api/comments/{id}/dislike", r.commentHandler.ToggleCommentDislike)
	r.mux.HandleFunc("POST /api/replies/{id}/like", r.commentHandler.ToggleReplyLike)
	r.mux.HandleFunc("POST /api/replies/{id}/dislike", r.commentHandler.ToggleReplyDislike)

	// Company endpoints
	r.mux.HandleFunc("POST /api/companies/applications", r.companyHandler.SubmitApplication)
	r.mux.HandleFunc("PATCH /api/companies/{id}", r.companyHandler.UpdateInfo)
	r.mux.HandleFunc("GET /api/companies/{id}/services", r.catalogHandler.ListByCompany)
	r.mux.HandleFunc("POST /api/companies/{id}/reviews", r.companyHandler.CreateReview)

	// Company review endpoints
	r.mux.HandleFunc("POST /api/reviews/{id}/replies", r.companyHandler.AddReviewReply)
	r.mux.HandleFunc("POST /api/reviews/{id}/vote", r.companyHandler.VoteReview)
	r.mux.HandleFunc("POST /api/reviews/{id}/flag", r.companyHandler.FlagReview)

	// Admin endpoints
	r.mux.HandleFunc("GET /api/admin/manager-applications", r.adminHandler.ListManagerApplications)
	r.mux.HandleFunc("POST /api/admin/manager-applications/{id}/approve", r.adminHandler.ApproveManager)
	r.mux.HandleFunc("POST /api/admin/manager-applications/{id}/reject", r.adminHandler.RejectManager)
	r.mux.HandleFunc("GET /api/admin/company-applications", r.adminHandler.ListCompanyApplications)
	r.mux.HandleFunc("POST /api/admin/company-applications/{id}/approve", r.adminHandler.ApproveCompanyApplication)
	r.mux.HandleFunc("GET /api/admin/store/export", r.adminHandler.Export)
	r.mux.HandleFunc("POST /api/admin/store/import", r.adminHandler.Import)
	r.mux.HandleFunc("POST /api/admin/store/reset", r.adminHandler.Reset)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so preflight requests short-circuit early.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
