package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
)

func newFeedFixture(t *testing.T) (FeedService, int) {
	st := newTestStore(t)
	owner := seedUser(t, st, "owner", false)

	posts := newPostService(st, nil)
	polls := NewPollService(st, nil, zap.NewNop())
	events := NewEventService(st, nil, zap.NewNop())
	slideshows := NewSlideshowService(st, nil, zap.NewNop())
	audios := NewAudioService(st, nil, zap.NewNop())

	seedPost(t, st, owner, time.Now().UTC(), nil, false)
	_, err := polls.Create(context.Background(), owner, models.CreatePollRequest{
		Question: "Feed check?", Options: []string{"Yes", "No"},
	})
	require.NoError(t, err)
	_, err = slideshows.Create(context.Background(), owner, models.CreateSlideshowRequest{
		MediaURLs: []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	})
	require.NoError(t, err)
	_, err = audios.Create(context.Background(), owner, models.CreateAudioNoteRequest{
		AudioURL: "https://cdn.example.com/note.mp3",
	})
	require.NoError(t, err)

	return NewFeedService(posts, polls, events, slideshows, audios), owner
}

func TestFeedService_DispatchesByKind(t *testing.T) {
	feed, viewer := newFeedFixture(t)

	for _, kind := range []models.ContentKind{
		models.KindPost, models.KindPoll, models.KindSlideshow, models.KindAudio,
	} {
		page, err := feed.List(context.Background(), kind, viewer, ListOptions{})
		require.NoError(t, err, kind)
		require.Equal(t, kind, page.Kind)
		require.Len(t, page.Items, 1, kind)
	}

	// No events were created; the page is present but empty.
	page, err := feed.List(context.Background(), models.KindEvent, viewer, ListOptions{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
}

func TestFeedService_RejectsUnknownKind(t *testing.T) {
	feed, viewer := newFeedFixture(t)

	_, err := feed.List(context.Background(), models.KindStory, viewer, ListOptions{})
	require.ErrorIs(t, err, ErrInvalid)

	_, err = feed.List(context.Background(), models.ContentKind("mixtape"), viewer, ListOptions{})
	require.ErrorIs(t, err, ErrInvalid)
}
