package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	st := newTestStore(t)
	svc := NewUserService(st, nil, zap.NewNop())

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "dana@example.com",
		Name:     "dana",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "dana", user.Name)
	require.Equal(t, "light", user.Theme)

	// Duplicate email and duplicate name are both conflicts.
	_, err = svc.Register(context.Background(), models.RegisterRequest{
		Email: "dana@example.com", Name: "other", Password: "hunter2hunter2",
	})
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.Register(context.Background(), models.RegisterRequest{
		Email: "other@example.com", Name: "DANA", Password: "hunter2hunter2",
	})
	require.ErrorIs(t, err, ErrConflict)

	authed, err := svc.Authenticate(context.Background(), models.LoginRequest{
		Email: "dana@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(context.Background(), models.LoginRequest{
		Email: "dana@example.com", Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Register(context.Background(), models.RegisterRequest{
		Email: "short@example.com", Name: "short", Password: "abc",
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestUserService_UpdateProfile(t *testing.T) {
	st := newTestStore(t)
	svc := NewUserService(st, nil, zap.NewNop())
	id := seedUser(t, st, "erin", false)
	seedUser(t, st, "frank", false)

	bio := "travel photos"
	private := true
	view, err := svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{
		Bio:          &bio,
		IsPrivate:    &private,
		FavoriteTags: []string{"Sunsets", "sunsets", "Street Art"},
	})
	require.NoError(t, err)
	require.Equal(t, "travel photos", view.Bio)
	require.True(t, view.IsPrivate)
	require.Equal(t, []string{"sunsets", "streetart"}, view.FavoriteTags)

	// Renaming to another user's name is a conflict, keeping your own is not.
	taken := "frank"
	_, err = svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{Name: &taken})
	require.ErrorIs(t, err, ErrConflict)
	own := "erin"
	_, err = svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{Name: &own})
	require.NoError(t, err)
}

func TestUserService_Search(t *testing.T) {
	st := newTestStore(t)
	svc := NewUserService(st, nil, zap.NewNop())
	seedUser(t, st, "Annika", false)
	seedUser(t, st, "hannah", false)
	seedUser(t, st, "bob", false)

	results, err := svc.Search(context.Background(), "ann", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = svc.Search(context.Background(), "  ", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestUserService_SuggestUsernames(t *testing.T) {
	st := newTestStore(t)
	svc := NewUserService(st, nil, zap.NewNop())
	seedUser(t, st, "gil", false)
	seedUser(t, st, "gil1", false)

	suggestions, err := svc.SuggestUsernames(context.Background(), "gil", 3)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	require.NotContains(t, suggestions, "gil1")

	_, err = svc.SuggestUsernames(context.Background(), "   ", 3)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestUserService_IsAdmin(t *testing.T) {
	st := newTestStore(t)
	first := seedUser(t, st, "first", false)
	second := seedUser(t, st, "second", false)

	// Without a configured list the first account is the admin.
	svc := NewUserService(st, nil, zap.NewNop())
	admin, err := svc.IsAdmin(context.Background(), first)
	require.NoError(t, err)
	require.True(t, admin)
	admin, err = svc.IsAdmin(context.Background(), second)
	require.NoError(t, err)
	require.False(t, admin)

	// A configured list replaces the fallback entirely.
	svc = NewUserService(st, []string{"second@example.com"}, zap.NewNop())
	admin, err = svc.IsAdmin(context.Background(), first)
	require.NoError(t, err)
	require.False(t, admin)
	admin, err = svc.IsAdmin(context.Background(), second)
	require.NoError(t, err)
	require.True(t, admin)
}

func TestUserService_Stats(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st, nil, zap.NewNop())
	follows := NewFollowService(st, newTestFanout(), zap.NewNop())
	reactions := NewReactionService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	fan := seedUser(t, st, "fan", false)

	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)
	_, err := follows.Follow(context.Background(), fan, owner)
	require.NoError(t, err)
	_, err = reactions.ToggleLike(context.Background(), postID, fan, true)
	require.NoError(t, err)

	stats, err := users.Stats(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, 1, stats.PostCount)
	require.Equal(t, 1, stats.FollowerCount)
	require.Equal(t, 0, stats.FollowingCount)
	require.Equal(t, 1, stats.TotalLikes)
}
