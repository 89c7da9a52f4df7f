package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/notify"
	"github.com/connectsphere/backend/internal/store"
)

// FollowService manages follow edges through their pending/approved states
type FollowService interface {
	// Follow creates an edge from follower to target: pending when the
	// target account is private, approved otherwise. Following an already
	// followed user is a no-op returning current state.
	Follow(ctx context.Context, followerID, targetID int) (models.FollowState, error)
	// Unfollow deletes any edge regardless of status, covering the
	// withdrawal of a pending request.
	Unfollow(ctx context.Context, followerID, targetID int) (models.FollowState, error)
	// Approve transitions a pending request into an approved edge and
	// notifies the follower. Returns false when no pending edge exists.
	Approve(ctx context.Context, ownerID, followerID int) (bool, error)
	// Reject deletes a pending request. Returns false when none exists.
	Reject(ctx context.Context, ownerID, followerID int) (bool, error)
	// Status reports the edge state from follower to target.
	Status(ctx context.Context, followerID, targetID int) (models.FollowStatus, error)
	// ListRequests returns the pending requests awaiting the owner.
	ListRequests(ctx context.Context, ownerID int) ([]models.FollowRequestView, error)
	// ListFollowers returns users with an approved edge to the given user.
	ListFollowers(ctx context.Context, userID int) ([]models.Author, error)
	// ListFollowing returns users the given user follows with approved status.
	ListFollowing(ctx context.Context, userID int) ([]models.Author, error)
}

type followService struct {
	store  store.Store
	fanout *notify.Fanout
	log    *zap.Logger
}

// NewFollowService creates a FollowService
func NewFollowService(st store.Store, fanout *notify.Fanout, logger *zap.Logger) FollowService {
	return &followService{store: st, fanout: fanout, log: logger}
}

func (s *followService) Follow(ctx context.Context, followerID, targetID int) (models.FollowState, error) {
	if followerID == targetID {
		return models.FollowState{}, conflictf("cannot follow yourself")
	}
	var state models.FollowState
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		target := snap.UserByID(targetID)
		if target == nil {
			return notFoundf("user %d", targetID)
		}

		if snap.FollowEdge(followerID, targetID) == nil {
			status := models.FollowApproved
			if target.IsPrivate {
				status = models.FollowPending
			}
			snap.Follows = append(snap.Follows, models.Follow{
				FollowerID:  followerID,
				FollowingID: targetID,
				Status:      status,
				CreatedAt:   time.Now().UTC(),
			})
			if status == models.FollowApproved {
				s.fanout.Follow(snap, targetID, followerID)
			}
		}

		state = followState(snap, followerID, targetID)
		return nil
	})
	return state, err
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID int) (models.FollowState, error) {
	var state models.FollowState
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		snap.RemoveFollowEdge(followerID, targetID)
		state = followState(snap, followerID, targetID)
		return nil
	})
	return state, err
}

func (s *followService) Approve(ctx context.Context, ownerID, followerID int) (bool, error) {
	var ok bool
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		edge := snap.FollowEdge(followerID, ownerID)
		if edge == nil || edge.Status != models.FollowPending {
			return nil
		}
		edge.Status = models.FollowApproved
		s.fanout.Follow(snap, followerID, ownerID)
		ok = true
		return nil
	})
	return ok, err
}

func (s *followService) Reject(ctx context.Context, ownerID, followerID int) (bool, error) {
	var ok bool
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		edge := snap.FollowEdge(followerID, ownerID)
		if edge == nil || edge.Status != models.FollowPending {
			return nil
		}
		ok = snap.RemoveFollowEdge(followerID, ownerID)
		return nil
	})
	return ok, err
}

func (s *followService) Status(ctx context.Context, followerID, targetID int) (models.FollowStatus, error) {
	status := models.FollowNone
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		if edge := snap.FollowEdge(followerID, targetID); edge != nil {
			status = edge.Status
		}
		return nil
	})
	return status, err
}

func (s *followService) ListRequests(ctx context.Context, ownerID int) ([]models.FollowRequestView, error) {
	var out []models.FollowRequestView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Follows {
			f := &snap.Follows[i]
			if f.FollowingID != ownerID || f.Status != models.FollowPending {
				continue
			}
			follower := snap.UserByID(f.FollowerID)
			if follower == nil {
				continue
			}
			out = append(out, models.FollowRequestView{
				ID:        follower.ID,
				Name:      follower.Name,
				AvatarURL: follower.AvatarURL,
				CreatedAt: f.CreatedAt,
			})
		}
		return nil
	})
	return out, err
}

func (s *followService) ListFollowers(ctx context.Context, userID int) ([]models.Author, error) {
	return s.listEdgeUsers(ctx, func(f *models.Follow) (int, bool) {
		if f.FollowingID == userID && f.Status == models.FollowApproved {
			return f.FollowerID, true
		}
		return 0, false
	})
}

func (s *followService) ListFollowing(ctx context.Context, userID int) ([]models.Author, error) {
	return s.listEdgeUsers(ctx, func(f *models.Follow) (int, bool) {
		if f.FollowerID == userID && f.Status == models.FollowApproved {
			return f.FollowingID, true
		}
		return 0, false
	})
}

func (s *followService) listEdgeUsers(ctx context.Context, pick func(*models.Follow) (int, bool)) ([]models.Author, error) {
	var out []models.Author
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Follows {
			id, ok := pick(&snap.Follows[i])
			if !ok {
				continue
			}
			if u := snap.UserByID(id); u != nil {
				out = append(out, u.Summary())
			}
		}
		return nil
	})
	return out, err
}

// followState derives the response returned by follow/unfollow. IsFollowing
// reflects only approved edges; the follower count counts approved edges.
func followState(snap *store.Snapshot, followerID, targetID int) models.FollowState {
	state := models.FollowState{FollowerCount: snap.ApprovedFollowerCount(targetID)}
	if edge := snap.FollowEdge(followerID, targetID); edge != nil {
		state.IsFollowing = edge.Status == models.FollowApproved
		state.IsPending = edge.Status == models.FollowPending
	}
	return state
}
