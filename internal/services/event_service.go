package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// EventService owns event records and their listing
type EventService interface {
	Create(ctx context.Context, userID int, req models.CreateEventRequest) (models.EventView, error)
	Get(ctx context.Context, id, viewerID int) (models.EventView, error)
	List(ctx context.Context, viewerID int, opts ListOptions) ([]models.EventView, string, error)
	Delete(ctx context.Context, id, actorID int) error
}

type eventService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewEventService creates an EventService
func NewEventService(st store.Store, adminEmails []string, logger *zap.Logger) EventService {
	return &eventService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *eventService) Create(ctx context.Context, userID int, req models.CreateEventRequest) (models.EventView, error) {
	if err := validateRequest(&req); err != nil {
		return models.EventView{}, err
	}
	var view models.EventView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		snap.Counters.Events++
		event := models.Event{
			ID:          snap.Counters.Events,
			UserID:      userID,
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Location:    strings.TrimSpace(req.Location),
			StartsAt:    req.StartsAt.UTC(),
			CreatedAt:   time.Now().UTC(),
		}
		snap.Events = append(snap.Events, event)
		view = eventView(snap, &event, author, userID)
		return nil
	})
	return view, err
}

func (s *eventService) Get(ctx context.Context, id, viewerID int) (models.EventView, error) {
	var view models.EventView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		event := snap.EventByID(id)
		if event == nil || !contentVisible(snap, viewerID, event) {
			return notFoundf("event %d", id)
		}
		author := snap.UserByID(event.UserID)
		if author == nil {
			return notFoundf("event %d", id)
		}
		view = eventView(snap, event, author, viewerID)
		return nil
	})
	return view, err
}

func (s *eventService) List(ctx context.Context, viewerID int, opts ListOptions) ([]models.EventView, string, error) {
	views := []models.EventView{}
	var next string
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		items := make([]models.ContentItem, 0, len(snap.Events))
		for i := range snap.Events {
			items = append(items, &snap.Events[i])
		}
		selected, cursor, err := filterContent(snap, viewerID, items, opts, nil)
		if err != nil {
			return err
		}
		next = cursor
		for _, item := range selected {
			event, ok := item.(*models.Event)
			if !ok {
				continue
			}
			author := snap.UserByID(event.UserID)
			if author == nil {
				continue
			}
			views = append(views, eventView(snap, event, author, viewerID))
		}
		return nil
	})
	return views, next, err
}

func (s *eventService) Delete(ctx context.Context, id, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		event := snap.EventByID(id)
		if event == nil {
			return notFoundf("event %d", id)
		}
		if event.UserID != actorID && !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d cannot delete event %d", actorID, id)
		}
		for i := range snap.Events {
			if snap.Events[i].ID == id {
				snap.Events = append(snap.Events[:i], snap.Events[i+1:]...)
				break
			}
		}
		rsvps := snap.EventRSVPs[:0]
		for i := range snap.EventRSVPs {
			if snap.EventRSVPs[i].EventID != id {
				rsvps = append(rsvps, snap.EventRSVPs[i])
			}
		}
		snap.EventRSVPs = rsvps
		return nil
	})
}

func eventView(snap *store.Snapshot, event *models.Event, author *models.User, viewerID int) models.EventView {
	count := 0
	attending := false
	for i := range snap.EventRSVPs {
		r := &snap.EventRSVPs[i]
		if r.EventID != event.ID {
			continue
		}
		count++
		if r.UserID == viewerID {
			attending = true
		}
	}
	return models.EventView{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt,
		CreatedAt:   event.CreatedAt,
		Author:      author.Summary(),
		Stats:       models.EventStats{RSVPs: count},
		ViewerRSVP:  &attending,
	}
}
