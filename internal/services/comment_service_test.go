package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
)

func TestCommentService_CreateNotifiesOwnerAndMentions(t *testing.T) {
	st := newTestStore(t)
	svc := NewCommentService(st, newTestFanout(), nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	commenter := seedUser(t, st, "commenter", false)
	mentioned := seedUser(t, st, "maya", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	view, err := svc.Create(context.Background(), commenter, models.CreateCommentRequest{
		TargetType: models.KindPost,
		TargetID:   postID,
		Content:    "great shot @maya @MAYA @owner @ghost",
	})
	require.NoError(t, err)
	require.Equal(t, postID, view.TargetID)

	// The owner is notified once even though they are also mentioned.
	ownerNotifs := notificationsFor(t, st, owner)
	require.Len(t, ownerNotifs, 1)
	require.Equal(t, models.NotifyComment, ownerNotifs[0].Type)
	require.Equal(t, commenter, ownerNotifs[0].ActorID)

	// Mentions are deduplicated case-insensitively; unknown names are skipped.
	mentionNotifs := notificationsFor(t, st, mentioned)
	require.Len(t, mentionNotifs, 1)

	// The actor never receives a notification.
	require.Empty(t, notificationsFor(t, st, commenter))
}

func TestCommentService_SelfCommentDoesNotNotify(t *testing.T) {
	st := newTestStore(t)
	svc := NewCommentService(st, newTestFanout(), nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	_, err := svc.Create(context.Background(), owner, models.CreateCommentRequest{
		TargetType: models.KindPost,
		TargetID:   postID,
		Content:    "first!",
	})
	require.NoError(t, err)
	require.Empty(t, notificationsFor(t, st, owner))
}

func TestCommentService_RepliesAndListing(t *testing.T) {
	st := newTestStore(t)
	svc := NewCommentService(st, newTestFanout(), nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	parent, err := svc.Create(context.Background(), owner, models.CreateCommentRequest{
		TargetType: models.KindPost,
		TargetID:   postID,
		Content:    "thread start",
	})
	require.NoError(t, err)

	reply, err := svc.Create(context.Background(), owner, models.CreateCommentRequest{
		TargetType:      models.KindPost,
		TargetID:        postID,
		Content:         "reply",
		ParentCommentID: &parent.ID,
	})
	require.NoError(t, err)

	// Replies are excluded from the top-level listing.
	top, err := svc.ListForTarget(context.Background(), models.KindPost, postID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, parent.ID, top[0].ID)
	require.Equal(t, 1, top[0].RepliesCount)

	replies, err := svc.ListReplies(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.Equal(t, reply.ID, replies[0].ID)

	missing := 999
	_, err = svc.Create(context.Background(), owner, models.CreateCommentRequest{
		TargetType:      models.KindPost,
		TargetID:        postID,
		Content:         "orphan",
		ParentCommentID: &missing,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_DeleteCascadesOneLevel(t *testing.T) {
	st := newTestStore(t)
	svc := NewCommentService(st, newTestFanout(), nil, zap.NewNop())
	owner := seedUser(t, st, "owner", false)
	commenter := seedUser(t, st, "commenter", false)
	stranger := seedUser(t, st, "stranger", false)
	postID := seedPost(t, st, owner, time.Now().UTC(), nil, false)

	parent, err := svc.Create(context.Background(), commenter, models.CreateCommentRequest{
		TargetType: models.KindPost, TargetID: postID, Content: "parent",
	})
	require.NoError(t, err)
	for _, content := range []string{"reply one", "reply two"} {
		_, err := svc.Create(context.Background(), owner, models.CreateCommentRequest{
			TargetType: models.KindPost, TargetID: postID, Content: content,
			ParentCommentID: &parent.ID,
		})
		require.NoError(t, err)
	}

	err = svc.Delete(context.Background(), parent.ID, stranger)
	require.ErrorIs(t, err, ErrForbidden)

	// The post owner may remove a comment thread under their post.
	err = svc.Delete(context.Background(), parent.ID, owner)
	require.NoError(t, err)

	top, err := svc.ListForTarget(context.Background(), models.KindPost, postID)
	require.NoError(t, err)
	require.Empty(t, top)
	replies, err := svc.ListReplies(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Empty(t, replies)
}

func TestCommentService_InvalidTargets(t *testing.T) {
	st := newTestStore(t)
	svc := NewCommentService(st, newTestFanout(), nil, zap.NewNop())
	user := seedUser(t, st, "user", false)

	_, err := svc.Create(context.Background(), user, models.CreateCommentRequest{
		TargetType: models.KindPost, TargetID: 42, Content: "no post here",
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListForTarget(context.Background(), models.KindStory, 1)
	require.ErrorIs(t, err, ErrInvalid)
}
