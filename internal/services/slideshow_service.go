package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// SlideshowService owns slideshow records and their listing
type SlideshowService interface {
	Create(ctx context.Context, userID int, req models.CreateSlideshowRequest) (models.SlideshowView, error)
	List(ctx context.Context, viewerID int, opts ListOptions) ([]models.SlideshowView, string, error)
	Delete(ctx context.Context, id, actorID int) error
}

type slideshowService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewSlideshowService creates a SlideshowService
func NewSlideshowService(st store.Store, adminEmails []string, logger *zap.Logger) SlideshowService {
	return &slideshowService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *slideshowService) Create(ctx context.Context, userID int, req models.CreateSlideshowRequest) (models.SlideshowView, error) {
	if err := validateRequest(&req); err != nil {
		return models.SlideshowView{}, err
	}
	var view models.SlideshowView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		snap.Counters.Slideshows++
		show := models.Slideshow{
			ID:        snap.Counters.Slideshows,
			UserID:    userID,
			MediaURLs: req.MediaURLs,
			Caption:   strings.TrimSpace(req.Caption),
			CreatedAt: time.Now().UTC(),
		}
		snap.Slideshows = append(snap.Slideshows, show)
		view = slideshowView(&show, author)
		return nil
	})
	return view, err
}

func (s *slideshowService) List(ctx context.Context, viewerID int, opts ListOptions) ([]models.SlideshowView, string, error) {
	views := []models.SlideshowView{}
	var next string
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		items := make([]models.ContentItem, 0, len(snap.Slideshows))
		for i := range snap.Slideshows {
			items = append(items, &snap.Slideshows[i])
		}
		selected, cursor, err := filterContent(snap, viewerID, items, opts, nil)
		if err != nil {
			return err
		}
		next = cursor
		for _, item := range selected {
			show, ok := item.(*models.Slideshow)
			if !ok {
				continue
			}
			author := snap.UserByID(show.UserID)
			if author == nil {
				continue
			}
			views = append(views, slideshowView(show, author))
		}
		return nil
	})
	return views, next, err
}

func (s *slideshowService) Delete(ctx context.Context, id, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		show := snap.SlideshowByID(id)
		if show == nil {
			return notFoundf("slideshow %d", id)
		}
		if show.UserID != actorID && !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d cannot delete slideshow %d", actorID, id)
		}
		for i := range snap.Slideshows {
			if snap.Slideshows[i].ID == id {
				snap.Slideshows = append(snap.Slideshows[:i], snap.Slideshows[i+1:]...)
				break
			}
		}
		return nil
	})
}

func slideshowView(show *models.Slideshow, author *models.User) models.SlideshowView {
	return models.SlideshowView{
		ID:        show.ID,
		Caption:   show.Caption,
		MediaURLs: show.MediaURLs,
		CreatedAt: show.CreatedAt,
		Author:    author.Summary(),
	}
}
