package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

func newPostService(st store.Store, adminEmails []string) PostService {
	return NewPostService(st, newTestFanout(), adminEmails, zap.NewNop())
}

func TestPostService_VisibilityFlipsOnApproval(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	follows := NewFollowService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", true)
	viewer := seedUser(t, st, "viewer", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	// A private account's post is hidden from strangers.
	_, err := posts.Get(context.Background(), postID, viewer)
	require.ErrorIs(t, err, ErrNotFound)

	page, err := posts.List(context.Background(), viewer, ListOptions{})
	require.NoError(t, err)
	require.Empty(t, page.Posts)

	// A pending follow request changes nothing.
	_, err = follows.Follow(context.Background(), viewer, owner)
	require.NoError(t, err)
	_, err = posts.Get(context.Background(), postID, viewer)
	require.ErrorIs(t, err, ErrNotFound)

	// Approval makes the post visible.
	approveFollow(t, follows, owner, viewer)
	view, err := posts.Get(context.Background(), postID, viewer)
	require.NoError(t, err)
	require.Equal(t, postID, view.ID)

	page, err = posts.List(context.Background(), viewer, ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	// Unfollowing hides it again.
	_, err = follows.Unfollow(context.Background(), viewer, owner)
	require.NoError(t, err)
	_, err = posts.Get(context.Background(), postID, viewer)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_PrivatePostOnPublicAccount(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	follows := NewFollowService(st, newTestFanout(), zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	viewer := seedUser(t, st, "viewer", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, true)

	// The item-level flag requires an approved edge even on a public account.
	_, err := posts.Get(context.Background(), postID, viewer)
	require.ErrorIs(t, err, ErrNotFound)

	// The owner always sees their own post.
	_, err = posts.Get(context.Background(), postID, owner)
	require.NoError(t, err)

	_, err = follows.Follow(context.Background(), viewer, owner)
	require.NoError(t, err)
	_, err = posts.Get(context.Background(), postID, viewer)
	require.NoError(t, err)
}

func TestPostService_TagNarrowing(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	owner := seedUser(t, st, "owner", false)
	viewer := seedUser(t, st, "viewer", false)

	base := time.Now().UTC().Add(-time.Hour)
	seedPost(t, st, owner, base, []string{"sunset"}, false)
	matching := seedPost(t, st, owner, base.Add(time.Minute), []string{"hiking"}, false)

	err := st.Update(context.Background(), func(snap *store.Snapshot) error {
		snap.UserByID(viewer).FavoriteTags = []string{"hiking"}
		return nil
	})
	require.NoError(t, err)

	// With a matching favorite tag, only matching posts are returned.
	page, err := posts.List(context.Background(), viewer, ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, matching, page.Posts[0].ID)

	// With no matches the preference is ignored and the full set comes back.
	err = st.Update(context.Background(), func(snap *store.Snapshot) error {
		snap.UserByID(viewer).FavoriteTags = []string{"cooking"}
		return nil
	})
	require.NoError(t, err)

	page, err = posts.List(context.Background(), viewer, ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
}

func TestPostService_Pagination(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	owner := seedUser(t, st, "owner", false)

	base := time.Now().UTC().Add(-time.Hour)
	first := seedPost(t, st, owner, base, nil, false)
	second := seedPost(t, st, owner, base.Add(time.Minute), nil, false)
	third := seedPost(t, st, owner, base.Add(2*time.Minute), nil, false)

	page, err := posts.List(context.Background(), owner, ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	require.Equal(t, third, page.Posts[0].ID)
	require.Equal(t, second, page.Posts[1].ID)
	require.NotEmpty(t, page.NextCursor)

	// The cursor is exclusive: the next page starts after the last item.
	page, err = posts.List(context.Background(), owner, ListOptions{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, first, page.Posts[0].ID)
	require.Empty(t, page.NextCursor)

	_, err = posts.List(context.Background(), owner, ListOptions{Cursor: "not-a-timestamp"})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestPostService_OwnerFilters(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	alice := seedUser(t, st, "alice", false)
	bob := seedUser(t, st, "bob", false)
	viewer := seedUser(t, st, "viewer", false)

	base := time.Now().UTC().Add(-time.Hour)
	fromAlice := seedPost(t, st, alice, base, nil, false)
	fromBob := seedPost(t, st, bob, base.Add(time.Minute), nil, false)

	page, err := posts.List(context.Background(), viewer, ListOptions{OwnerID: &alice})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, fromAlice, page.Posts[0].ID)

	page, err = posts.List(context.Background(), viewer, ListOptions{ExcludeOwnerID: &alice})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, fromBob, page.Posts[0].ID)

	// The owner filter wins when both are set.
	page, err = posts.List(context.Background(), viewer, ListOptions{OwnerID: &alice, ExcludeOwnerID: &alice})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, fromAlice, page.Posts[0].ID)
}

func TestPostService_CreateSanitizesTags(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	owner := seedUser(t, st, "owner", false)

	view, err := posts.Create(context.Background(), owner, models.CreatePostRequest{
		MediaURL:  "https://cdn.example.com/a.jpg",
		MediaType: "image",
		Caption:   "  golden hour  ",
		Tags:      []string{"Sunset!", "sunset", "Beach Day"},
	})
	require.NoError(t, err)
	require.Equal(t, "golden hour", view.Caption)
	require.Equal(t, []string{"sunset", "beachday"}, view.Tags)
	require.True(t, view.Viewer.IsOwner)
}

func TestPostService_Delete(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, []string{"admin@example.com"})
	owner := seedUser(t, st, "owner", false)
	stranger := seedUser(t, st, "stranger", false)
	admin := seedUser(t, st, "admin", false)

	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	err := posts.Delete(context.Background(), postID, stranger)
	require.ErrorIs(t, err, ErrForbidden)

	// The configured admin may delete anyone's post.
	err = posts.Delete(context.Background(), postID, admin)
	require.NoError(t, err)

	err = posts.Delete(context.Background(), postID, owner)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_SetPrivacyOwnerOnly(t *testing.T) {
	st := newTestStore(t)
	posts := newPostService(st, nil)
	owner := seedUser(t, st, "owner", false)
	stranger := seedUser(t, st, "stranger", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	err := posts.SetPrivacy(context.Background(), postID, stranger, true)
	require.ErrorIs(t, err, ErrForbidden)

	err = posts.SetPrivacy(context.Background(), postID, owner, true)
	require.NoError(t, err)

	view, err := posts.Get(context.Background(), postID, owner)
	require.NoError(t, err)
	require.True(t, view.IsPrivate)
}
