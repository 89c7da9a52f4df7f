package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/notify"
	"github.com/connectsphere/backend/internal/store"
)

// ReactionService is the ledger of per-user like/save/vote/RSVP state.
// Toggles are idempotent: activating an active reaction and deactivating an
// inactive one are both no-ops.
type ReactionService interface {
	// ToggleLike sets the viewer's like state on a post. The activating
	// transition notifies the post owner exactly once; deactivation never
	// notifies.
	ToggleLike(ctx context.Context, postID, userID int, active bool) (models.ReactionResult, error)
	// ToggleSave sets the viewer's bookmark state on a post. Saves never
	// notify.
	ToggleSave(ctx context.Context, postID, userID int, active bool) (models.ReactionResult, error)
	// Vote casts the user's single vote on a poll. Voting again moves the
	// vote: the previous option's tally is decremented (floored at zero)
	// and the new option's incremented within one atomic update.
	Vote(ctx context.Context, pollID int, optionID string, userID int) (models.PollView, error)
	// RSVP toggles the user's membership in an event's attendee set.
	RSVP(ctx context.Context, eventID, userID int, attending bool) (models.EventView, error)
}

type reactionService struct {
	store  store.Store
	fanout *notify.Fanout
	log    *zap.Logger
}

// NewReactionService creates a ReactionService
func NewReactionService(st store.Store, fanout *notify.Fanout, logger *zap.Logger) ReactionService {
	return &reactionService{store: st, fanout: fanout, log: logger}
}

func (s *reactionService) ToggleLike(ctx context.Context, postID, userID int, active bool) (models.ReactionResult, error) {
	return s.toggle(ctx, postID, userID, active, true)
}

func (s *reactionService) ToggleSave(ctx context.Context, postID, userID int, active bool) (models.ReactionResult, error) {
	return s.toggle(ctx, postID, userID, active, false)
}

func (s *reactionService) toggle(ctx context.Context, postID, userID int, active, likes bool) (models.ReactionResult, error) {
	var result models.ReactionResult
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		post := snap.PostByID(postID)
		if post == nil {
			return notFoundf("post %d", postID)
		}

		collection := &snap.Bookmarks
		if likes {
			collection = &snap.Likes
		}

		idx := -1
		for i := range *collection {
			if (*collection)[i].PostID == postID && (*collection)[i].UserID == userID {
				idx = i
				break
			}
		}

		switch {
		case active && idx == -1:
			*collection = append(*collection, models.Reaction{
				UserID:    userID,
				PostID:    postID,
				CreatedAt: time.Now().UTC(),
			})
			if likes {
				s.fanout.Like(snap, post.UserID, userID, postID)
			}
		case !active && idx != -1:
			*collection = append((*collection)[:idx], (*collection)[idx+1:]...)
		}

		count := 0
		for i := range *collection {
			if (*collection)[i].PostID == postID {
				count++
			}
		}
		result = models.ReactionResult{Count: count, Active: active}
		return nil
	})
	return result, err
}

func (s *reactionService) Vote(ctx context.Context, pollID int, optionID string, userID int) (models.PollView, error) {
	var view models.PollView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		poll := snap.PollByID(pollID)
		if poll == nil {
			return notFoundf("poll %d", pollID)
		}
		option := poll.Option(optionID)
		if option == nil {
			return notFoundf("option %s of poll %d", optionID, pollID)
		}

		// Move any previous vote before counting the new one.
		for i := range snap.PollVotes {
			v := &snap.PollVotes[i]
			if v.PollID != pollID || v.UserID != userID {
				continue
			}
			if prev := poll.Option(v.OptionID); prev != nil && prev.Votes > 0 {
				prev.Votes--
			}
			snap.PollVotes = append(snap.PollVotes[:i], snap.PollVotes[i+1:]...)
			break
		}

		option.Votes++
		snap.PollVotes = append(snap.PollVotes, models.PollVote{
			PollID:    pollID,
			UserID:    userID,
			OptionID:  optionID,
			CreatedAt: time.Now().UTC(),
		})

		author := snap.UserByID(poll.UserID)
		if author == nil {
			return notFoundf("poll %d author", pollID)
		}
		view = pollView(poll, author, &optionID)
		return nil
	})
	return view, err
}

func (s *reactionService) RSVP(ctx context.Context, eventID, userID int, attending bool) (models.EventView, error) {
	var view models.EventView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		event := snap.EventByID(eventID)
		if event == nil {
			return notFoundf("event %d", eventID)
		}

		idx := -1
		for i := range snap.EventRSVPs {
			if snap.EventRSVPs[i].EventID == eventID && snap.EventRSVPs[i].UserID == userID {
				idx = i
				break
			}
		}
		switch {
		case attending && idx == -1:
			snap.EventRSVPs = append(snap.EventRSVPs, models.EventRSVP{
				EventID:   eventID,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			})
		case !attending && idx != -1:
			snap.EventRSVPs = append(snap.EventRSVPs[:idx], snap.EventRSVPs[idx+1:]...)
		}

		author := snap.UserByID(event.UserID)
		if author == nil {
			return notFoundf("event %d author", eventID)
		}
		view = eventView(snap, event, author, userID)
		return nil
	})
	return view, err
}
