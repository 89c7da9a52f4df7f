package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// PollService owns poll records and their listing
type PollService interface {
	Create(ctx context.Context, userID int, req models.CreatePollRequest) (models.PollView, error)
	Get(ctx context.Context, id, viewerID int) (models.PollView, error)
	List(ctx context.Context, viewerID int, opts ListOptions) ([]models.PollView, string, error)
	Delete(ctx context.Context, id, actorID int) error
}

type pollService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewPollService creates a PollService
func NewPollService(st store.Store, adminEmails []string, logger *zap.Logger) PollService {
	return &pollService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *pollService) Create(ctx context.Context, userID int, req models.CreatePollRequest) (models.PollView, error) {
	if err := validateRequest(&req); err != nil {
		return models.PollView{}, err
	}
	options := make([]models.PollOption, 0, len(req.Options))
	for _, label := range req.Options {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		options = append(options, models.PollOption{ID: uuid.NewString(), Label: label})
	}
	if len(options) < 2 {
		return models.PollView{}, invalidf("a poll needs at least two options")
	}

	var view models.PollView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		snap.Counters.Polls++
		poll := models.Poll{
			ID:        snap.Counters.Polls,
			UserID:    userID,
			Question:  strings.TrimSpace(req.Question),
			Options:   options,
			CreatedAt: time.Now().UTC(),
		}
		snap.Polls = append(snap.Polls, poll)
		view = pollView(&poll, author, nil)
		return nil
	})
	return view, err
}

func (s *pollService) Get(ctx context.Context, id, viewerID int) (models.PollView, error) {
	var view models.PollView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		poll := snap.PollByID(id)
		if poll == nil || !contentVisible(snap, viewerID, poll) {
			return notFoundf("poll %d", id)
		}
		author := snap.UserByID(poll.UserID)
		if author == nil {
			return notFoundf("poll %d", id)
		}
		view = pollView(poll, author, viewerSelection(snap, id, viewerID))
		return nil
	})
	return view, err
}

func (s *pollService) List(ctx context.Context, viewerID int, opts ListOptions) ([]models.PollView, string, error) {
	views := []models.PollView{}
	var next string
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		items := make([]models.ContentItem, 0, len(snap.Polls))
		for i := range snap.Polls {
			items = append(items, &snap.Polls[i])
		}
		selected, cursor, err := filterContent(snap, viewerID, items, opts, nil)
		if err != nil {
			return err
		}
		next = cursor

		// One pass over the vote ledger serves the whole page.
		selections := make(map[int]string)
		for i := range snap.PollVotes {
			if snap.PollVotes[i].UserID == viewerID {
				selections[snap.PollVotes[i].PollID] = snap.PollVotes[i].OptionID
			}
		}
		for _, item := range selected {
			poll, ok := item.(*models.Poll)
			if !ok {
				continue
			}
			author := snap.UserByID(poll.UserID)
			if author == nil {
				continue
			}
			var sel *string
			if optionID, ok := selections[poll.ID]; ok {
				sel = &optionID
			}
			views = append(views, pollView(poll, author, sel))
		}
		return nil
	})
	return views, next, err
}

func (s *pollService) Delete(ctx context.Context, id, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		poll := snap.PollByID(id)
		if poll == nil {
			return notFoundf("poll %d", id)
		}
		if poll.UserID != actorID && !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d cannot delete poll %d", actorID, id)
		}
		for i := range snap.Polls {
			if snap.Polls[i].ID == id {
				snap.Polls = append(snap.Polls[:i], snap.Polls[i+1:]...)
				break
			}
		}
		// Votes reference options by id; drop them with the poll.
		votes := snap.PollVotes[:0]
		for i := range snap.PollVotes {
			if snap.PollVotes[i].PollID != id {
				votes = append(votes, snap.PollVotes[i])
			}
		}
		snap.PollVotes = votes
		return nil
	})
}

func viewerSelection(snap *store.Snapshot, pollID, viewerID int) *string {
	for i := range snap.PollVotes {
		v := &snap.PollVotes[i]
		if v.PollID == pollID && v.UserID == viewerID {
			optionID := v.OptionID
			return &optionID
		}
	}
	return nil
}

func pollView(poll *models.Poll, author *models.User, selection *string) models.PollView {
	options := make([]models.PollOption, len(poll.Options))
	copy(options, poll.Options)
	return models.PollView{
		ID:              poll.ID,
		Question:        poll.Question,
		Options:         options,
		CreatedAt:       poll.CreatedAt,
		Author:          author.Summary(),
		ViewerSelection: selection,
	}
}
