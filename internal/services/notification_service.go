package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// NotificationService reads and acknowledges a user's notifications.
// Creation happens through the fan-out inside the triggering operations.
type NotificationService interface {
	// List returns the user's notifications, newest first.
	List(ctx context.Context, userID, limit int) ([]models.NotificationView, error)
	// MarkRead flags the given notifications as read; with no ids, all of
	// the user's notifications are flagged.
	MarkRead(ctx context.Context, userID int, ids []int) error
	// UnreadCount counts the user's unread notifications.
	UnreadCount(ctx context.Context, userID int) (int, error)
}

type notificationService struct {
	store store.Store
	log   *zap.Logger
}

// NewNotificationService creates a NotificationService
func NewNotificationService(st store.Store, logger *zap.Logger) NotificationService {
	return &notificationService{store: st, log: logger}
}

func (s *notificationService) List(ctx context.Context, userID, limit int) ([]models.NotificationView, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	views := []models.NotificationView{}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		var mine []models.Notification
		for i := range snap.Notifications {
			if snap.Notifications[i].UserID == userID {
				mine = append(mine, snap.Notifications[i])
			}
		}
		sort.SliceStable(mine, func(i, j int) bool {
			return mine[i].CreatedAt.After(mine[j].CreatedAt)
		})
		if len(mine) > limit {
			mine = mine[:limit]
		}
		for i := range mine {
			actor := snap.UserByID(mine[i].ActorID)
			if actor == nil {
				continue
			}
			views = append(views, models.NotificationView{
				ID:        mine[i].ID,
				Type:      mine[i].Type,
				Actor:     actor.Summary(),
				PostID:    mine[i].PostID,
				CommentID: mine[i].CommentID,
				IsRead:    mine[i].IsRead,
				CreatedAt: mine[i].CreatedAt,
			})
		}
		return nil
	})
	return views, err
}

func (s *notificationService) MarkRead(ctx context.Context, userID int, ids []int) error {
	var wanted map[int]struct{}
	if len(ids) > 0 {
		wanted = make(map[int]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
	}
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Notifications {
			n := &snap.Notifications[i]
			if n.UserID != userID {
				continue
			}
			if wanted != nil {
				if _, ok := wanted[n.ID]; !ok {
					continue
				}
			}
			n.IsRead = true
		}
		return nil
	})
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int) (int, error) {
	count := 0
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Notifications {
			if snap.Notifications[i].UserID == userID && !snap.Notifications[i].IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}
