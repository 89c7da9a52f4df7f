package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// StoryService owns ephemeral stories. Expired stories are purged lazily
// whenever the collection is touched.
type StoryService interface {
	Create(ctx context.Context, userID int, req models.CreateStoryRequest) (models.StoryView, error)
	// ListActive returns the unexpired stories visible to the viewer,
	// newest first.
	ListActive(ctx context.Context, viewerID int) ([]models.StoryView, error)
}

type storyService struct {
	store store.Store
	log   *zap.Logger
}

// NewStoryService creates a StoryService
func NewStoryService(st store.Store, logger *zap.Logger) StoryService {
	return &storyService{store: st, log: logger}
}

func (s *storyService) Create(ctx context.Context, userID int, req models.CreateStoryRequest) (models.StoryView, error) {
	if err := validateRequest(&req); err != nil {
		return models.StoryView{}, err
	}
	var view models.StoryView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		purgeExpired(snap, time.Now())

		now := time.Now().UTC()
		snap.Counters.Stories++
		story := models.Story{
			ID:              snap.Counters.Stories,
			UserID:          userID,
			MediaURL:        req.MediaURL,
			MediaType:       req.MediaType,
			Caption:         strings.TrimSpace(req.Caption),
			DurationSeconds: req.DurationSeconds,
			CreatedAt:       now,
			ExpiresAt:       now.Add(models.StoryTTL),
		}
		snap.Stories = append(snap.Stories, story)
		view = storyView(&story, author)
		return nil
	})
	return view, err
}

func (s *storyService) ListActive(ctx context.Context, viewerID int) ([]models.StoryView, error) {
	views := []models.StoryView{}
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		purgeExpired(snap, time.Now())
		approved := snap.ApprovedFollowingSet(viewerID)
		for i := len(snap.Stories) - 1; i >= 0; i-- {
			story := &snap.Stories[i]
			if !contentVisibleIndexed(snap, viewerID, storyItem{story}, approved) {
				continue
			}
			author := snap.UserByID(story.UserID)
			if author == nil {
				continue
			}
			views = append(views, storyView(story, author))
		}
		return nil
	})
	return views, err
}

func purgeExpired(snap *store.Snapshot, now time.Time) {
	kept := snap.Stories[:0]
	for i := range snap.Stories {
		if !snap.Stories[i].Expired(now) {
			kept = append(kept, snap.Stories[i])
		}
	}
	snap.Stories = kept
}

// storyItem adapts a story to the content item surface for visibility checks
type storyItem struct {
	*models.Story
}

func (s storyItem) ItemID() int            { return s.ID }
func (s storyItem) OwnerID() int           { return s.UserID }
func (s storyItem) CreatedTime() time.Time { return s.CreatedAt }
func (s storyItem) ItemPrivate() bool      { return false }
func (s storyItem) ItemTags() []string     { return nil }

func storyView(story *models.Story, author *models.User) models.StoryView {
	return models.StoryView{
		ID:              story.ID,
		MediaURL:        story.MediaURL,
		MediaType:       story.MediaType,
		Caption:         story.Caption,
		CreatedAt:       story.CreatedAt,
		ExpiresAt:       story.ExpiresAt,
		DurationSeconds: story.DurationSeconds,
		Author:          author.Summary(),
	}
}
