package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/notify"
	"github.com/connectsphere/backend/internal/store"
)

// CommentService owns comments across all content targets
type CommentService interface {
	// Create inserts a comment and fans out notifications to the target's
	// owner and any mentioned users.
	Create(ctx context.Context, userID int, req models.CreateCommentRequest) (models.CommentView, error)
	// ListForTarget returns the top-level comments of a content item.
	ListForTarget(ctx context.Context, targetType models.ContentKind, targetID int) ([]models.CommentView, error)
	// ListReplies returns the direct replies of a comment.
	ListReplies(ctx context.Context, commentID int) ([]models.CommentView, error)
	// Delete removes a comment and its direct replies. Permitted for the
	// comment's author, the target's owner, or an admin.
	Delete(ctx context.Context, commentID, actorID int) error
}

type commentService struct {
	store       store.Store
	fanout      *notify.Fanout
	adminEmails []string
	log         *zap.Logger
}

// NewCommentService creates a CommentService
func NewCommentService(st store.Store, fanout *notify.Fanout, adminEmails []string, logger *zap.Logger) CommentService {
	return &commentService{store: st, fanout: fanout, adminEmails: adminEmails, log: logger}
}

func (s *commentService) Create(ctx context.Context, userID int, req models.CreateCommentRequest) (models.CommentView, error) {
	if err := validateRequest(&req); err != nil {
		return models.CommentView{}, err
	}
	var view models.CommentView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		target := snap.ContentByKind(req.TargetType, req.TargetID)
		if target == nil {
			return notFoundf("%s %d", req.TargetType, req.TargetID)
		}
		if req.ParentCommentID != nil {
			parent := snap.CommentByID(*req.ParentCommentID)
			if parent == nil {
				return notFoundf("parent comment %d", *req.ParentCommentID)
			}
		}

		snap.Counters.Comments++
		comment := models.Comment{
			ID:              snap.Counters.Comments,
			TargetType:      req.TargetType,
			TargetID:        req.TargetID,
			UserID:          userID,
			Content:         strings.TrimSpace(req.Content),
			ParentCommentID: req.ParentCommentID,
			CreatedAt:       time.Now().UTC(),
		}
		snap.Comments = append(snap.Comments, comment)

		var postID *int
		if req.TargetType == models.KindPost {
			id := req.TargetID
			postID = &id
		}
		s.fanout.Comment(snap, userID, target.OwnerID(), comment.Content, postID, comment.ID)

		view = commentView(snap, &comment, author)
		return nil
	})
	return view, err
}

func (s *commentService) ListForTarget(ctx context.Context, targetType models.ContentKind, targetID int) ([]models.CommentView, error) {
	if !models.ValidCommentTarget(targetType) {
		return nil, invalidf("%q is not a comment target", targetType)
	}
	views := []models.CommentView{}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Comments {
			c := &snap.Comments[i]
			if c.TargetType != targetType || c.TargetID != targetID || c.ParentCommentID != nil {
				continue
			}
			author := snap.UserByID(c.UserID)
			if author == nil {
				continue
			}
			views = append(views, commentView(snap, c, author))
		}
		return nil
	})
	return views, err
}

func (s *commentService) ListReplies(ctx context.Context, commentID int) ([]models.CommentView, error) {
	views := []models.CommentView{}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Comments {
			c := &snap.Comments[i]
			if c.ParentCommentID == nil || *c.ParentCommentID != commentID {
				continue
			}
			author := snap.UserByID(c.UserID)
			if author == nil {
				continue
			}
			views = append(views, commentView(snap, c, author))
		}
		return nil
	})
	return views, err
}

func (s *commentService) Delete(ctx context.Context, commentID, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		comment := snap.CommentByID(commentID)
		if comment == nil {
			return notFoundf("comment %d", commentID)
		}

		allowed := comment.UserID == actorID
		if !allowed {
			if target := snap.ContentByKind(comment.TargetType, comment.TargetID); target != nil {
				allowed = target.OwnerID() == actorID
			}
		}
		if !allowed {
			allowed = isAdminUser(snap, actorID, s.adminEmails)
		}
		if !allowed {
			return forbiddenf("user %d cannot delete comment %d", actorID, commentID)
		}

		// Cascade is a single level: the comment and its direct replies.
		kept := snap.Comments[:0]
		for i := range snap.Comments {
			c := &snap.Comments[i]
			if c.ID == commentID {
				continue
			}
			if c.ParentCommentID != nil && *c.ParentCommentID == commentID {
				continue
			}
			kept = append(kept, *c)
		}
		snap.Comments = kept
		return nil
	})
}

func commentView(snap *store.Snapshot, comment *models.Comment, author *models.User) models.CommentView {
	replies := 0
	for i := range snap.Comments {
		if p := snap.Comments[i].ParentCommentID; p != nil && *p == comment.ID {
			replies++
		}
	}
	return models.CommentView{
		ID:              comment.ID,
		TargetType:      comment.TargetType,
		TargetID:        comment.TargetID,
		ParentCommentID: comment.ParentCommentID,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt,
		Author:          author.Summary(),
		RepliesCount:    replies,
	}
}
