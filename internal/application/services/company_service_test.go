package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func TestCompanyService_ApplicationWorkflow(t *testing.T) {
	st, _, _ := newSeededStore(t)
	companies := services.NewCompanyService(st)
	ctx := context.Background()

	app, err := companies.SubmitApplication(ctx, services.CompanyApplicationInput{
		Name:      "Side Ventures",
		Category:  "Consulting",
		ManagerID: "user_manager_pending",
	})
	require.NoError(t, err)
	require.Len(t, companies.PendingApplications(), 1)

	_, err = companies.ApproveApplication(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	company, err := companies.ApproveApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Side Ventures", company.Name)
	assert.Empty(t, companies.PendingApplications())

	// The referenced manager got linked to the new company.
	var linked string
	st.View(func(s *store.State) {
		linked = s.UserByID("user_manager_pending").CompanyID
	})
	assert.Equal(t, company.ID, linked)
}

func TestCompanyService_UpdateInfo_PartialMerge(t *testing.T) {
	st, _, _ := newSeededStore(t)
	companies := services.NewCompanyService(st)
	ctx := context.Background()

	name := "Tech Solutions International"
	updated, err := companies.UpdateInfo(ctx, "comp_1", services.CompanyPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "IT Services", updated.Category, "untouched fields survive the merge")

	_, err = companies.UpdateInfo(ctx, "missing", services.CompanyPatch{})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCompanyService_CreateReview(t *testing.T) {
	st, _, _ := newSeededStore(t)
	companies := services.NewCompanyService(st)
	ctx := context.Background()

	_, err := companies.CreateReview(ctx, services.ReviewInput{UserID: "user_1", CompanyID: "comp_1", Rating: 9})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRating))
	_, err = companies.CreateReview(ctx, services.ReviewInput{UserID: "user_1", CompanyID: "missing", Rating: 4})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = companies.CreateReview(ctx, services.ReviewInput{UserID: "user_1", CompanyID: "comp_1", Rating: 4, Text: "good"})
	require.NoError(t, err)
	_, err = companies.CreateReview(ctx, services.ReviewInput{UserID: "user_admin", CompanyID: "comp_1", Rating: 2, Text: "meh"})
	require.NoError(t, err)

	// One review per (user, company) pair.
	_, err = companies.CreateReview(ctx, services.ReviewInput{UserID: "user_1", CompanyID: "comp_1", Rating: 5})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAlreadyRated))

	updated, err := companies.UpdateInfo(ctx, "comp_1", services.CompanyPatch{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.Rating)
}

func TestCompanyService_ReviewRepliesAndVotes(t *testing.T) {
	st, _, _ := newSeededStore(t)
	companies := services.NewCompanyService(st)
	ctx := context.Background()

	review, err := companies.CreateReview(ctx, services.ReviewInput{UserID: "user_1", CompanyID: "comp_1", Rating: 4, Text: "solid"})
	require.NoError(t, err)

	// Only the manager of the reviewed company may reply.
	_, err = companies.AddReviewReply(ctx, review.ID, "user_1", "thanks me")
	assert.True(t, apperrors.IsForbidden(err))
	reply, err := companies.AddReviewReply(ctx, review.ID, "user_manager_approved", "thank you")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.ID)

	// Votes are write-once per user.
	require.NoError(t, companies.VoteReview(ctx, review.ID, "user_admin", true))
	err = companies.VoteReview(ctx, review.ID, "user_admin", false)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAlreadyRated))
	assert.True(t, apperrors.IsNotFound(companies.VoteReview(ctx, "missing", "user_admin", true)))

	require.NoError(t, companies.FlagReview(ctx, review.ID, "spam"))
	assert.True(t, apperrors.IsNotFound(companies.FlagReview(ctx, "missing", "spam")))
}
