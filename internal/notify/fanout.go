// Package notify creates notification records in response to social
// actions. Fan-out runs inside the same store update as the triggering
// action; it never fails the action and never notifies an actor about
// their own activity.
package notify

import (
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// Fanout appends notification records to a snapshot under mutation
type Fanout struct {
	log *zap.Logger
}

// New creates a Fanout. A nil logger disables logging.
func New(logger *zap.Logger) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fanout{log: logger}
}

// Follow notifies a user that actor now follows them. Used both when a
// public-account follow is created and when a pending request is approved,
// in which case the recipient is the follower.
func (f *Fanout) Follow(snap *store.Snapshot, recipientID, actorID int) {
	f.push(snap, models.Notification{
		UserID:  recipientID,
		Type:    models.NotifyFollow,
		ActorID: actorID,
	})
}

// Like notifies a post's owner about a new like
func (f *Fanout) Like(snap *store.Snapshot, ownerID, actorID, postID int) {
	id := postID
	f.push(snap, models.Notification{
		UserID:  ownerID,
		Type:    models.NotifyLike,
		ActorID: actorID,
		PostID:  &id,
	})
}

// Comment notifies the content owner and every resolvable @mention in the
// comment body. Mentions are deduplicated case-insensitively; the commenter
// and an owner who is also mentioned are notified at most once.
func (f *Fanout) Comment(snap *store.Snapshot, actorID, ownerID int, content string, postID *int, commentID int) {
	cid := commentID
	f.push(snap, models.Notification{
		UserID:    ownerID,
		Type:      models.NotifyComment,
		ActorID:   actorID,
		PostID:    postID,
		CommentID: &cid,
	})

	for _, name := range ExtractMentions(content) {
		mentioned := snap.UserByName(name)
		if mentioned == nil {
			f.log.Debug("mention did not resolve", zap.String("name", name))
			continue
		}
		if mentioned.ID == actorID || mentioned.ID == ownerID {
			continue
		}
		f.push(snap, models.Notification{
			UserID:    mentioned.ID,
			Type:      models.NotifyComment,
			ActorID:   actorID,
			PostID:    postID,
			CommentID: &cid,
		})
	}
}

func (f *Fanout) push(snap *store.Snapshot, n models.Notification) {
	if n.UserID == n.ActorID {
		return
	}
	snap.Counters.Notifications++
	n.ID = snap.Counters.Notifications
	n.CreatedAt = time.Now().UTC()
	snap.Notifications = append(snap.Notifications, n)
}
