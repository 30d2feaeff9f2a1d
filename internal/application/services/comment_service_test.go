package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/application/services"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func TestCommentService_AddReply(t *testing.T) {
	st, _, _ := newSeededStore(t)
	comments := services.NewCommentService(st)
	ctx := context.Background()

	_, err := comments.AddReply(ctx, "missing", "user_manager_approved", "hello")
	assert.True(t, apperrors.IsNotFound(err))

	// Only the owning manager of the containing service may reply.
	_, err = comments.AddReply(ctx, "comment_1", "user_1", "I disagree")
	assert.True(t, apperrors.IsForbidden(err))

	reply, err := comments.AddReply(ctx, "comment_1", "user_manager_approved", "Glad it worked out")
	require.NoError(t, err)

	// Replies append oldest first, the reverse of comments.
	c, err := comments.CommentByID("comment_1")
	require.NoError(t, err)
	require.Len(t, c.Replies, 2)
	assert.Equal(t, "reply_1", c.Replies[0].ID)
	assert.Equal(t, reply.ID, c.Replies[1].ID)
}

func TestCommentService_Lookups(t *testing.T) {
	st, _, _ := newSeededStore(t)
	comments := services.NewCommentService(st)

	c, err := comments.CommentByID("comment_1")
	require.NoError(t, err)
	assert.NotNil(t, c.Replies)
	assert.NotNil(t, c.Likes)
	assert.NotNil(t, c.Dislikes)

	r, err := comments.ReplyByID("reply_1")
	require.NoError(t, err)
	assert.Equal(t, "user_manager_approved", r.UserID)

	_, err = comments.CommentByID("missing")
	assert.True(t, apperrors.IsNotFound(err))
	_, err = comments.ReplyByID("missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCommentService_LookupAfterNewComment(t *testing.T) {
	st, _, _ := newSeededStore(t)
	comments := services.NewCommentService(st)
	reactions := services.NewReactionService(st)
	ctx := context.Background()

	created, err := reactions.AddComment(ctx, "service_1", "user_1", "fresh", 0)
	require.NoError(t, err)

	found, err := comments.CommentByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", found.Text)
}
