package models

import "time"

// NotificationType identifies what triggered a notification
type NotificationType string

const (
	NotifyLike    NotificationType = "like"
	NotifyComment NotificationType = "comment"
	NotifyFollow  NotificationType = "follow"
)

// Notification is an append-only record; only IsRead ever changes.
// A notification is never created where ActorID == UserID.
type Notification struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Type      NotificationType `json:"type"`
	ActorID   int              `json:"actor_id"`
	PostID    *int             `json:"post_id,omitempty"`
	CommentID *int             `json:"comment_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationView is the notification representation returned to callers
type NotificationView struct {
	ID        int              `json:"id"`
	Type      NotificationType `json:"type"`
	Actor     Author           `json:"actor"`
	PostID    *int             `json:"postId,omitempty"`
	CommentID *int             `json:"commentId,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// MarkReadRequest selects notifications to mark as read; empty means all
type MarkReadRequest struct {
	IDs []int `json:"ids,omitempty"`
}
