package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVisibilityResolver_CanView(t *testing.T) {
	st := newTestStore(t)
	resolver := NewVisibilityResolver(st)
	follows := NewFollowService(st, newTestFanout(), zap.NewNop())

	publicOwner := seedUser(t, st, "public_owner", false)
	privateOwner := seedUser(t, st, "private_owner", true)
	viewer := seedUser(t, st, "viewer", false)

	tt := []struct {
		name     string
		viewerID int
		ownerID  int
		want     bool
	}{
		{name: "public account is visible to anyone", viewerID: viewer, ownerID: publicOwner, want: true},
		{name: "private account is hidden from strangers", viewerID: viewer, ownerID: privateOwner, want: false},
		{name: "owner always sees their own content", viewerID: privateOwner, ownerID: privateOwner, want: true},
		{name: "unknown owner is never visible", viewerID: viewer, ownerID: 999, want: false},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.CanView(context.Background(), tc.viewerID, tc.ownerID)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	// A pending edge grants nothing; approval flips the answer.
	_, err := follows.Follow(context.Background(), viewer, privateOwner)
	require.NoError(t, err)
	got, err := resolver.CanView(context.Background(), viewer, privateOwner)
	require.NoError(t, err)
	require.False(t, got)

	approveFollow(t, follows, privateOwner, viewer)
	got, err = resolver.CanView(context.Background(), viewer, privateOwner)
	require.NoError(t, err)
	require.True(t, got)
}
