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

// PostService owns post records: creation, listing with visibility and tag
// preference, saved-post listing, privacy toggling and deletion
type PostService interface {
	Create(ctx context.Context, userID int, req models.CreatePostRequest) (models.PostView, error)
	Get(ctx context.Context, id, viewerID int) (models.PostView, error)
	// List applies the viewer's favorite tags as a soft preference.
	List(ctx context.Context, viewerID int, opts ListOptions) (models.PostPage, error)
	// ListSaved pages through the viewer's bookmarked posts.
	ListSaved(ctx context.Context, userID int, opts ListOptions) (models.PostPage, error)
	// Delete removes a post; permitted for the owner or an admin.
	Delete(ctx context.Context, id, actorID int) error
	// SetPrivacy toggles the item-level privacy flag; owner only.
	SetPrivacy(ctx context.Context, id, userID int, isPrivate bool) error
}

type postService struct {
	store       store.Store
	fanout      *notify.Fanout
	adminEmails []string
	log         *zap.Logger
}

// NewPostService creates a PostService
func NewPostService(st store.Store, fanout *notify.Fanout, adminEmails []string, logger *zap.Logger) PostService {
	return &postService{store: st, fanout: fanout, adminEmails: adminEmails, log: logger}
}

func (s *postService) Create(ctx context.Context, userID int, req models.CreatePostRequest) (models.PostView, error) {
	if err := validateRequest(&req); err != nil {
		return models.PostView{}, err
	}
	var view models.PostView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		snap.Counters.Posts++
		post := models.Post{
			ID:        snap.Counters.Posts,
			UserID:    userID,
			MediaURL:  req.MediaURL,
			MediaType: req.MediaType,
			Caption:   strings.TrimSpace(req.Caption),
			Tags:      models.SanitizeTags(req.Tags),
			CreatedAt: time.Now().UTC(),
		}
		snap.Posts = append(snap.Posts, post)
		view = postView(&post, author, buildReactionMaps(snap, userID), buildCommentCounts(snap), userID)
		return nil
	})
	return view, err
}

func (s *postService) Get(ctx context.Context, id, viewerID int) (models.PostView, error) {
	var view models.PostView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		post := snap.PostByID(id)
		if post == nil || !contentVisible(snap, viewerID, post) {
			return notFoundf("post %d", id)
		}
		author := snap.UserByID(post.UserID)
		if author == nil {
			return notFoundf("post %d", id)
		}
		view = postView(post, author, buildReactionMaps(snap, viewerID), buildCommentCounts(snap), viewerID)
		return nil
	})
	return view, err
}

func (s *postService) List(ctx context.Context, viewerID int, opts ListOptions) (models.PostPage, error) {
	page := models.PostPage{Posts: []models.PostView{}}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		items := make([]models.ContentItem, 0, len(snap.Posts))
		for i := range snap.Posts {
			items = append(items, &snap.Posts[i])
		}
		var preferred []string
		if viewer := snap.UserByID(viewerID); viewer != nil {
			preferred = viewer.FavoriteTags
		}
		selected, next, err := filterContent(snap, viewerID, items, opts, preferred)
		if err != nil {
			return err
		}
		page.NextCursor = next
		page.Posts = enrichPosts(snap, selected, viewerID)
		return nil
	})
	return page, err
}

func (s *postService) ListSaved(ctx context.Context, userID int, opts ListOptions) (models.PostPage, error) {
	page := models.PostPage{Posts: []models.PostView{}}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		saved := make(map[int]struct{})
		for i := range snap.Bookmarks {
			if snap.Bookmarks[i].UserID == userID {
				saved[snap.Bookmarks[i].PostID] = struct{}{}
			}
		}
		items := make([]models.ContentItem, 0, len(saved))
		for i := range snap.Posts {
			if _, ok := saved[snap.Posts[i].ID]; ok {
				items = append(items, &snap.Posts[i])
			}
		}
		// No tag narrowing on the saved listing: the viewer chose these.
		selected, next, err := filterContent(snap, userID, items, opts, nil)
		if err != nil {
			return err
		}
		page.NextCursor = next
		page.Posts = enrichPosts(snap, selected, userID)
		return nil
	})
	return page, err
}

func (s *postService) Delete(ctx context.Context, id, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		post := snap.PostByID(id)
		if post == nil {
			return notFoundf("post %d", id)
		}
		if post.UserID != actorID && !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d cannot delete post %d", actorID, id)
		}
		for i := range snap.Posts {
			if snap.Posts[i].ID == id {
				snap.Posts = append(snap.Posts[:i], snap.Posts[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (s *postService) SetPrivacy(ctx context.Context, id, userID int, isPrivate bool) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		post := snap.PostByID(id)
		if post == nil {
			return notFoundf("post %d", id)
		}
		if post.UserID != userID {
			return forbiddenf("user %d does not own post %d", userID, id)
		}
		post.IsPrivate = isPrivate
		return nil
	})
}

func enrichPosts(snap *store.Snapshot, items []models.ContentItem, viewerID int) []models.PostView {
	maps := buildReactionMaps(snap, viewerID)
	commentCounts := buildCommentCounts(snap)
	out := make([]models.PostView, 0, len(items))
	for _, item := range items {
		post, ok := item.(*models.Post)
		if !ok {
			continue
		}
		author := snap.UserByID(post.UserID)
		if author == nil {
			continue
		}
		out = append(out, postView(post, author, maps, commentCounts, viewerID))
	}
	return out
}

func postView(post *models.Post, author *models.User, maps reactionMaps, commentCounts map[int]int, viewerID int) models.PostView {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	_, liked := maps.viewerLikes[post.ID]
	_, savedPost := maps.viewerSaves[post.ID]
	return models.PostView{
		ID:        post.ID,
		MediaURL:  post.MediaURL,
		MediaType: post.MediaType,
		Caption:   post.Caption,
		Tags:      tags,
		IsPrivate: post.IsPrivate,
		CreatedAt: post.CreatedAt,
		Author:    author.Summary(),
		Stats: models.PostStats{
			Likes: maps.likeCounts[post.ID],
			Saves: maps.saveCounts[post.ID],
		},
		Viewer: &models.ViewerState{
			Liked:   liked,
			Saved:   savedPost,
			IsOwner: viewerID == post.UserID,
		},
		CommentCount: commentCounts[post.ID],
	}
}
