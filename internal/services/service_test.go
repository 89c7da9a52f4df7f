package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/notify"
	"github.com/connectsphere/backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return st
}

func newTestFanout() *notify.Fanout {
	return notify.New(zap.NewNop())
}

// seedUser inserts a user directly into the store and returns its id.
func seedUser(t *testing.T, st store.Store, name string, private bool) int {
	t.Helper()
	var id int
	err := st.Update(context.Background(), func(snap *store.Snapshot) error {
		snap.Counters.Users++
		id = snap.Counters.Users
		snap.Users = append(snap.Users, models.User{
			ID:        id,
			Email:     fmt.Sprintf("%s@example.com", name),
			Name:      name,
			IsPrivate: private,
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	require.NoError(t, err)
	return id
}

// seedPost inserts a post directly into the store and returns its id.
func seedPost(t *testing.T, st store.Store, userID int, createdAt time.Time, tags []string, private bool) int {
	t.Helper()
	var id int
	err := st.Update(context.Background(), func(snap *store.Snapshot) error {
		snap.Counters.Posts++
		id = snap.Counters.Posts
		snap.Posts = append(snap.Posts, models.Post{
			ID:        id,
			UserID:    userID,
			MediaURL:  fmt.Sprintf("https://cdn.example.com/%d.jpg", id),
			MediaType: "image",
			Tags:      tags,
			IsPrivate: private,
			CreatedAt: createdAt,
		})
		return nil
	})
	require.NoError(t, err)
	return id
}

// notificationsFor returns the stored notifications addressed to the user.
func notificationsFor(t *testing.T, st store.Store, userID int) []models.Notification {
	t.Helper()
	var out []models.Notification
	err := st.View(context.Background(), func(snap *store.Snapshot) error {
		for _, n := range snap.Notifications {
			if n.UserID == userID {
				out = append(out, n)
			}
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func approveFollow(t *testing.T, svc FollowService, ownerID, followerID int) {
	t.Helper()
	ok, err := svc.Approve(context.Background(), ownerID, followerID)
	require.NoError(t, err)
	require.True(t, ok)
}
