package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// CommentService handles official replies under service comments and the
// catalog-wide comment/reply lookups.
type CommentService struct {
	store *store.Store
}

// NewCommentService creates a new comment service.
func NewCommentService(st *store.Store) *CommentService {
	return &CommentService{store: st}
}

// AddReply appends an official reply under a comment. Replies are ordered
// oldest first, the reverse of comments. Only the owning manager of the
// service containing the comment may reply.
func (s *CommentService) AddReply(ctx context.Context, commentID, userID, text string) (*entities.Reply, error) {
	var created *entities.Reply
	err := s.store.Update(ctx, func(st *store.State) error {
		svc, comment := st.CommentByID(commentID)
		if comment == nil {
			return apperrors.NewNotFoundError("comment not found")
		}
		if svc.UserID != userID {
			return apperrors.NewForbiddenError("only the owning manager can reply")
		}
		reply := &entities.Reply{
			ID:        uuid.New().String(),
			UserID:    userID,
			Text:      text,
			Likes:     []string{},
			Dislikes:  []string{},
			CreatedAt: st.Now(),
		}
		comment.Replies = append(comment.Replies, reply)
		created = reply.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CommentByID finds a comment anywhere in the catalog and returns a copy
// with its replies guaranteed non-nil.
func (s *CommentService) CommentByID(id string) (*entities.Comment, error) {
	var found *entities.Comment
	s.store.View(func(st *store.State) {
		if _, c := st.CommentByID(id); c != nil {
			found = c.Clone()
		}
	})
	if found == nil {
		return nil, apperrors.NewNotFoundError("comment not found")
	}
	return found, nil
}

// ReplyByID finds a reply anywhere in the catalog and returns a copy.
func (s *CommentService) ReplyByID(id string) (*entities.Reply, error) {
	var found *entities.Reply
	s.store.View(func(st *store.State) {
		if _, _, r := st.ReplyByID(id); r != nil {
			found = r.Clone()
		}
	})
	if found == nil {
		return nil, apperrors.NewNotFoundError("reply not found")
	}
	return found, nil
}
