package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// CompanyService handles the company application workflow, company info
// updates and company-level reviews.
type CompanyService struct {
	store *store.Store
}

// NewCompanyService creates a new company service.
func NewCompanyService(st *store.Store) *CompanyService {
	return &CompanyService{store: st}
}

// CompanyApplicationInput carries a company registration request for an
// existing manager.
type CompanyApplicationInput struct {
	Name        string
	Category    string
	Description string
	ManagerID   string
}

// CompanyPatch is a partial update; nil fields are left untouched.
type CompanyPatch struct {
	Name        *string
	Category    *string
	Description *string
}

// ReviewInput carries a new company review.
type ReviewInput struct {
	UserID    string
	CompanyID string
	Rating    int
	Text      string
}

// SubmitApplication appends a pending company application.
func (s *CompanyService) SubmitApplication(ctx context.Context, in CompanyApplicationInput) (*entities.CompanyApplication, error) {
	var created *entities.CompanyApplication
	err := s.store.Update(ctx, func(st *store.State) error {
		app := &entities.CompanyApplication{
			ID:          uuid.New().String(),
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			ManagerID:   in.ManagerID,
			Status:      entities.ApplicationPending,
			CreatedAt:   st.Now(),
		}
		st.CompanyApplications = append(st.CompanyApplications, app)
		copied := *app
		created = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PendingApplications returns the pending company application queue.
func (s *CompanyService) PendingApplications() []*entities.CompanyApplication {
	var apps []*entities.CompanyApplication
	s.store.View(func(st *store.State) {
		for _, app := range st.CompanyApplications {
			if app.Status == entities.ApplicationPending {
				copied := *app
				apps = append(apps, &copied)
			}
		}
	})
	return apps
}

// ApproveApplication turns a pending application into a company and links
// the referenced manager to it.
func (s *CompanyService) ApproveApplication(ctx context.Context, applicationID string) (*entities.Company, error) {
	var company *entities.Company
	err := s.store.Update(ctx, func(st *store.State) error {
		idx := -1
		for i, app := range st.CompanyApplications {
			if app.ID == applicationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewNotFoundError("company application not found")
		}
		app := st.CompanyApplications[idx]

		c := &entities.Company{
			ID:          uuid.New().String(),
			Name:        app.Name,
			Category:    app.Category,
			Description: app.Description,
			ManagerID:   app.ManagerID,
			ApprovedAt:  st.Now(),
		}
		if manager := st.UserByID(app.ManagerID); manager != nil {
			manager.CompanyID = c.ID
		}
		st.Companies = append(st.Companies, c)
		st.CompanyApplications = append(st.CompanyApplications[:idx], st.CompanyApplications[idx+1:]...)

		copied := *c
		company = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateInfo merges the patch into the company, last write wins per field.
func (s *CompanyService) UpdateInfo(ctx context.Context, companyID string, patch CompanyPatch) (*entities.Company, error) {
	var updated *entities.Company
	err := s.store.Update(ctx, func(st *store.State) error {
		c := st.CompanyByID(companyID)
		if c == nil {
			return apperrors.NewNotFoundError("company not found")
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Category != nil {
			c.Category = *patch.Category
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		copied := *c
		updated = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CreateReview records a company review. One review per (user, company)
// pair; the company rating is recomputed in the same mutation.
func (s *CompanyService) CreateReview(ctx context.Context, in ReviewInput) (*entities.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperrors.NewInvalidRatingError("rating must be between 1 and 5")
	}
	var created *entities.Review
	err := s.store.Update(ctx, func(st *store.State) error {
		if st.CompanyByID(in.CompanyID) == nil {
			return apperrors.NewNotFoundError("company not found")
		}
		for _, r := range st.Reviews {
			if r.UserID == in.UserID && r.CompanyID == in.CompanyID {
				return apperrors.NewAlreadyRatedError("company already reviewed by this user")
			}
		}
		review := &entities.Review{
			ID:        uuid.New().String(),
			UserID:    in.UserID,
			CompanyID: in.CompanyID,
			Rating:    in.Rating,
			Text:      in.Text,
			Replies:   []*entities.Reply{},
			CreatedAt: st.Now(),
		}
		st.Reviews = append(st.Reviews, review)
		recomputeCompanyRating(st, in.CompanyID)
		created = review.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddReviewReply appends an official reply under a company review. Only the
// manager of the reviewed company may reply.
func (s *CompanyService) AddReviewReply(ctx context.Context, reviewID, userID, text string) (*entities.Reply, error) {
	var created *entities.Reply
	err := s.store.Update(ctx, func(st *store.State) error {
		review := st.ReviewByID(reviewID)
		if review == nil {
			return apperrors.NewNotFoundError("review not found")
		}
		user := st.UserByID(userID)
		if user == nil || user.CompanyID != review.CompanyID {
			return apperrors.NewForbiddenError("only the company manager can reply")
		}
		reply := &entities.Reply{
			ID:        uuid.New().String(),
			UserID:    userID,
			Text:      text,
			Likes:     []string{},
			Dislikes:  []string{},
			CreatedAt: st.Now(),
		}
		review.Replies = append(review.Replies, reply)
		created = reply.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// VoteReview records a write-once helpfulness vote on a review and bumps
// the matching counter.
func (s *CompanyService) VoteReview(ctx context.Context, reviewID, userID string, isLike bool) error {
	return s.store.Update(ctx, func(st *store.State) error {
		review := st.ReviewByID(reviewID)
		if review == nil {
			return apperrors.NewNotFoundError("review not found")
		}
		for _, v := range st.ReviewVotes {
			if v.ReviewID == reviewID && v.UserID == userID {
				return apperrors.NewAlreadyRatedError("review already voted on by this user")
			}
		}
		st.ReviewVotes = append(st.ReviewVotes, &entities.ReviewVote{
			ID:       uuid.New().String(),
			ReviewID: reviewID,
			UserID:   userID,
			IsLike:   isLike,
		})
		if isLike {
			review.Likes++
		} else {
			review.Dislikes++
		}
		return nil
	})
}

// FlagReview marks a review for moderation.
func (s *CompanyService) FlagReview(ctx context.Context, reviewID, reason string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		review := st.ReviewByID(reviewID)
		if review == nil {
			return apperrors.NewNotFoundError("review not found")
		}
		review.IsFlagged = true
		review.FlagReason = reason
		return nil
	})
}

// recomputeCompanyRating sets the company rating to the mean of its review
// ratings, zero when it has none.
func recomputeCompanyRating(st *store.State, companyID string) {
	company := st.CompanyByID(companyID)
	if company == nil {
		return
	}
	sum, n := 0, 0
	for _, r := range st.Reviews {
		if r.CompanyID == companyID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		company.Rating = 0
		return
	}
	company.Rating = float64(sum) / float64(n)
}
