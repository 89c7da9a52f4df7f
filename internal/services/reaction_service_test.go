package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
)

func TestReactionService_LikeIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	fan := seedUser(t, st, "fan", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	result, err := svc.ToggleLike(context.Background(), postID, fan, true)
	require.NoError(t, err)
	require.True(t, result.Active)
	require.Equal(t, 1, result.Count)

	// Liking again changes nothing and notifies nobody twice.
	result, err = svc.ToggleLike(context.Background(), postID, fan, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)

	notifs := notificationsFor(t, st, owner)
	require.Len(t, notifs, 1)
	require.Equal(t, models.NotifyLike, notifs[0].Type)
	require.Equal(t, fan, notifs[0].ActorID)
	require.NotNil(t, notifs[0].PostID)
	require.Equal(t, postID, *notifs[0].PostID)

	result, err = svc.ToggleLike(context.Background(), postID, fan, false)
	require.NoError(t, err)
	require.False(t, result.Active)
	require.Equal(t, 0, result.Count)

	// Unliking twice is also a no-op, and removal never notifies.
	result, err = svc.ToggleLike(context.Background(), postID, fan, false)
	require.NoError(t, err)
	require.Equal(t, 0, result.Count)
	require.Len(t, notificationsFor(t, st, owner), 1)
}

func TestReactionService_SelfLikeDoesNotNotify(t *testing.T) {
	st := newTestStore(t)
	svc := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	result, err := svc.ToggleLike(context.Background(), postID, owner, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	require.Empty(t, notificationsFor(t, st, owner))
}

func TestReactionService_SaveNeverNotifies(t *testing.T) {
	st := newTestStore(t)
	svc := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	fan := seedUser(t, st, "fan", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	result, err := svc.ToggleSave(context.Background(), postID, fan, true)
	require.NoError(t, err)
	require.True(t, result.Active)
	require.Equal(t, 1, result.Count)
	require.Empty(t, notificationsFor(t, st, owner))
}

func TestReactionService_VoteMovesBetweenOptions(t *testing.T) {
	st := newTestStore(t)
	reactions := NewReactionService(st, newTestFanout(), zap.NewNop())
	polls := NewPollService(st, nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	voter := seedUser(t, st, "voter", false)

	poll, err := polls.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "Tea or coffee?",
		Options:  []string{"Tea", "Coffee"},
	})
	require.NoError(t, err)
	tea, coffee := poll.Options[0].ID, poll.Options[1].ID

	view, err := reactions.Vote(context.Background(), poll.ID, tea, voter)
	require.NoError(t, err)
	require.Equal(t, 1, view.Options[0].Votes)
	require.Equal(t, 0, view.Options[1].Votes)
	require.Equal(t, tea, *view.ViewerSelection)

	// Re-voting the same option leaves the tallies unchanged.
	view, err = reactions.Vote(context.Background(), poll.ID, tea, voter)
	require.NoError(t, err)
	require.Equal(t, 1, view.Options[0].Votes)

	// Voting another option moves the vote; the total stays constant.
	view, err = reactions.Vote(context.Background(), poll.ID, coffee, voter)
	require.NoError(t, err)
	require.Equal(t, 0, view.Options[0].Votes)
	require.Equal(t, 1, view.Options[1].Votes)
	require.Equal(t, coffee, *view.ViewerSelection)

	_, err = reactions.Vote(context.Background(), poll.ID, "nope", voter)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReactionService_RSVPToggleDoesNotNotify(t *testing.T) {
	st := newTestStore(t)
	reactions := NewReactionService(st, newTestFanout(), zap.NewNop())
	events := NewEventService(st, nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	guest := seedUser(t, st, "guest", false)

	event, err := events.Create(context.Background(), owner, models.CreateEventRequest{
		Title:    "Rooftop meetup",
		Location: "Berlin",
		StartsAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	view, err := reactions.RSVP(context.Background(), event.ID, guest, true)
	require.NoError(t, err)
	require.Equal(t, 1, view.Stats.RSVPs)
	require.NotNil(t, view.ViewerRSVP)
	require.True(t, *view.ViewerRSVP)
	require.Empty(t, notificationsFor(t, st, owner))

	// Toggling twice in the same direction is idempotent.
	view, err = reactions.RSVP(context.Background(), event.ID, guest, true)
	require.NoError(t, err)
	require.Equal(t, 1, view.Stats.RSVPs)

	view, err = reactions.RSVP(context.Background(), event.ID, guest, false)
	require.NoError(t, err)
	require.Equal(t, 0, view.Stats.RSVPs)
}
