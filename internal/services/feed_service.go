package services

import (
	"context"

	"github.com/connectsphere/backend/internal/models"
)

// FeedPage is one page of a mixed-kind content listing
type FeedPage struct {
	Kind       models.ContentKind `json:"kind"`
	Items      []any              `json:"items"`
	NextCursor string             `json:"nextCursor"`
}

// FeedService dispatches a kind-parameterized listing to the owning
// service, applying the shared visibility, preference and pagination rules
type FeedService interface {
	List(ctx context.Context, kind models.ContentKind, viewerID int, opts ListOptions) (FeedPage, error)
}

type feedService struct {
	posts      PostService
	polls      PollService
	events     EventService
	slideshows SlideshowService
	audios     AudioService
}

// NewFeedService creates a FeedService over the per-kind services
func NewFeedService(posts PostService, polls PollService, events EventService, slideshows SlideshowService, audios AudioService) FeedService {
	return &feedService{posts: posts, polls: polls, events: events, slideshows: slideshows, audios: audios}
}

func (s *feedService) List(ctx context.Context, kind models.ContentKind, viewerID int, opts ListOptions) (FeedPage, error) {
	page := FeedPage{Kind: kind, Items: []any{}}
	switch kind {
	case models.KindPost:
		result, err := s.posts.List(ctx, viewerID, opts)
		if err != nil {
			return page, err
		}
		for _, v := range result.Posts {
			page.Items = append(page.Items, v)
		}
		page.NextCursor = result.NextCursor
	case models.KindPoll:
		views, next, err := s.polls.List(ctx, viewerID, opts)
		if err != nil {
			return page, err
		}
		for _, v := range views {
			page.Items = append(page.Items, v)
		}
		page.NextCursor = next
	case models.KindEvent:
		views, next, err := s.events.List(ctx, viewerID, opts)
		if err != nil {
			return page, err
		}
		for _, v := range views {
			page.Items = append(page.Items, v)
		}
		page.NextCursor = next
	case models.KindSlideshow:
		views, next, err := s.slideshows.List(ctx, viewerID, opts)
		if err != nil {
			return page, err
		}
		for _, v := range views {
			page.Items = append(page.Items, v)
		}
		page.NextCursor = next
	case models.KindAudio:
		views, next, err := s.audios.List(ctx, viewerID, opts)
		if err != nil {
			return page, err
		}
		for _, v := range views {
			page.Items = append(page.Items, v)
		}
		page.NextCursor = next
	default:
		return page, invalidf("unknown content kind %q", kind)
	}
	return page, nil
}
