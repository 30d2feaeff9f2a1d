package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// ReactionService handles star ratings, comment creation and the
// like/dislike toggles on services, comments and replies.
type ReactionService struct {
	store *store.Store
}

// NewReactionService creates a new reaction service.
func NewReactionService(st *store.Store) *ReactionService {
	return &ReactionService{store: st}
}

// RateService records a write-once star rating for the user and recomputes
// the service's aggregate rating as the mean of all per-user stars.
func (s *ReactionService) RateService(ctx context.Context, serviceID, userID string, stars int) error {
	if stars < 1 || stars > 5 {
		return apperrors.NewInvalidRatingError("stars must be between 1 and 5")
	}
	return s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(serviceID)
		if svc == nil {
			return apperrors.NewNotFoundError("service not found")
		}
		if _, rated := svc.Ratings[userID]; rated {
			return apperrors.NewAlreadyRatedError("service already rated by this user")
		}
		svc.Ratings[userID] = stars
		svc.Stats.Ratings[stars]++

		total := 0
		for _, v := range svc.Ratings {
			total += v
		}
		svc.Stats.TotalRating = float64(total) / float64(len(svc.Ratings))
		return nil
	})
}

// AddComment inserts a comment at the head of the service's comment list
// (newest first) and recomputes the average rating. A zero author rating
// means "no rating": the comment is shown but excluded from the mean.
func (s *ReactionService) AddComment(ctx context.Context, serviceID, userID, text string, authorRating int) (*entities.Comment, error) {
	if authorRating < 0 || authorRating > 5 {
		return nil, apperrors.NewInvalidRatingError("author rating must be between 1 and 5, or 0 for none")
	}
	var created *entities.Comment
	err := s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(serviceID)
		if svc == nil {
			return apperrors.NewNotFoundError("service not found")
		}
		comment := &entities.Comment{
			ID:           uuid.New().String(),
			UserID:       userID,
			Text:         text,
			AuthorRating: authorRating,
			Likes:        []string{},
			Dislikes:     []string{},
			Replies:      []*entities.Reply{},
			CreatedAt:    st.Now(),
		}
		svc.Comments = append([]*entities.Comment{comment}, svc.Comments...)
		svc.AverageRating = averageAuthorRating(svc.Comments)
		created = comment.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ToggleCommentLike flips the user's like on a comment, clearing any
// dislike first so the two sets stay mutually exclusive.
func (s *ReactionService) ToggleCommentLike(ctx context.Context, commentID, userID string) error {
	return s.toggleComment(ctx, commentID, userID, true)
}

// ToggleCommentDislike flips the user's dislike on a comment, clearing any
// like first.
func (s *ReactionService) ToggleCommentDislike(ctx context.Context, commentID, userID string) error {
	return s.toggleComment(ctx, commentID, userID, false)
}

func (s *ReactionService) toggleComment(ctx context.Context, commentID, userID string, like bool) error {
	return s.store.Update(ctx, func(st *store.State) error {
		_, comment := st.CommentByID(commentID)
		if comment == nil {
			return apperrors.NewNotFoundError("comment not found")
		}
		comment.Likes, comment.Dislikes = toggleReaction(comment.Likes, comment.Dislikes, userID, like)
		return nil
	})
}

// ToggleReplyLike flips the user's like on a reply.
func (s *ReactionService) ToggleReplyLike(ctx context.Context, replyID, userID string) error {
	return s.toggleReply(ctx, replyID, userID, true)
}

// ToggleReplyDislike flips the user's dislike on a reply.
func (s *ReactionService) ToggleReplyDislike(ctx context.Context, replyID, userID string) error {
	return s.toggleReply(ctx, replyID, userID, false)
}

func (s *ReactionService) toggleReply(ctx context.Context, replyID, userID string, like bool) error {
	return s.store.Update(ctx, func(st *store.State) error {
		_, _, reply := st.ReplyByID(replyID)
		if reply == nil {
			return apperrors.NewNotFoundError("reply not found")
		}
		reply.Likes, reply.Dislikes = toggleReaction(reply.Likes, reply.Dislikes, userID, like)
		return nil
	})
}

// toggleReaction implements the three-state reaction machine per user:
// none -> liked -> none, and disliked -> liked (and symmetrically for
// dislikes). The user can never end up in both sets.
func toggleReaction(likes, dislikes []string, userID string, like bool) ([]string, []string) {
	if like {
		dislikes = removeMember(dislikes, userID)
		likes, _ = toggleMembership(likes, userID)
	} else {
		likes = removeMember(likes, userID)
		dislikes, _ = toggleMembership(dislikes, userID)
	}
	return likes, dislikes
}

// averageAuthorRating is the mean of all nonzero author ratings, rounded to
// one decimal. Zero when no comment carries a rating.
func averageAuthorRating(comments []*entities.Comment) float64 {
	sum, n := 0, 0
	for _, c := range comments {
		if c.AuthorRating > 0 {
			sum += c.AuthorRating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
