package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

func TestPollService_Create(t *testing.T) {
	st := newTestStore(t)
	svc := NewPollService(st, nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)

	poll, err := svc.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "Best season?",
		Options:  []string{"Summer", "Winter", "Autumn"},
	})
	require.NoError(t, err)
	require.Len(t, poll.Options, 3)
	for _, opt := range poll.Options {
		require.NotEmpty(t, opt.ID)
		require.Zero(t, opt.Votes)
	}

	// Blank options collapse; fewer than two left is invalid.
	_, err = svc.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "One-sided?",
		Options:  []string{"Only", "   "},
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestPollService_ListShowsViewerSelection(t *testing.T) {
	st := newTestStore(t)
	polls := NewPollService(st, nil, zap.NewNop())
	reactions := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	voter := seedUser(t, st, "voter", false)

	poll, err := polls.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "Tabs or spaces?",
		Options:  []string{"Tabs", "Spaces"},
	})
	require.NoError(t, err)
	_, err = reactions.Vote(context.Background(), poll.ID, poll.Options[0].ID, voter)
	require.NoError(t, err)

	views, _, err := polls.List(context.Background(), voter, ListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].ViewerSelection)
	require.Equal(t, poll.Options[0].ID, *views[0].ViewerSelection)

	// A non-voter sees no selection.
	views, _, err = polls.List(context.Background(), owner, ListOptions{})
	require.NoError(t, err)
	require.Nil(t, views[0].ViewerSelection)
}

func TestPollService_DeleteCascadesVotes(t *testing.T) {
	st := newTestStore(t)
	polls := NewPollService(st, nil, zap.NewNop())
	reactions := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	stranger := seedUser(t, st, "stranger", false)

	poll, err := polls.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "Keep or delete?",
		Options:  []string{"Keep", "Delete"},
	})
	require.NoError(t, err)
	_, err = reactions.Vote(context.Background(), poll.ID, poll.Options[0].ID, stranger)
	require.NoError(t, err)

	err = polls.Delete(context.Background(), poll.ID, stranger)
	require.ErrorIs(t, err, ErrForbidden)

	err = polls.Delete(context.Background(), poll.ID, owner)
	require.NoError(t, err)

	err = st.View(context.Background(), func(snap *store.Snapshot) error {
		require.Empty(t, snap.Polls)
		require.Empty(t, snap.PollVotes)
		return nil
	})
	require.NoError(t, err)
}
