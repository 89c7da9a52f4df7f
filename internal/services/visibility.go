package services

import (
	"context"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// VisibilityResolver decides whether a viewer may see an owner's content.
// Every call re-derives from current follow state; nothing is cached across
// requests.
type VisibilityResolver interface {
	// CanView reports whether the viewer may see the owner's
	// account-level content.
	CanView(ctx context.Context, viewerID, ownerID int) (bool, error)
}

type visibilityResolver struct {
	store store.Store
}

// NewVisibilityResolver creates a VisibilityResolver backed by the store
func NewVisibilityResolver(st store.Store) VisibilityResolver {
	return &visibilityResolver{store: st}
}

func (r *visibilityResolver) CanView(ctx context.Context, viewerID, ownerID int) (bool, error) {
	var visible bool
	err := r.store.View(ctx, func(snap *store.Snapshot) error {
		visible = canViewOwner(snap, viewerID, ownerID)
		return nil
	})
	return visible, err
}

// canViewOwner applies the account-level rules: owners always see their own
// content; a private account requires an approved follow edge from the
// viewer; public accounts are visible to everyone.
func canViewOwner(snap *store.Snapshot, viewerID, ownerID int) bool {
	if viewerID == ownerID {
		return true
	}
	owner := snap.UserByID(ownerID)
	if owner == nil {
		return false
	}
	if !owner.IsPrivate {
		return true
	}
	return hasApprovedEdge(snap, viewerID, ownerID)
}

// contentVisible applies the full per-item rules, in order: owner viewing
// their own item; an item-level privacy flag (posts only) requiring an
// approved edge; the owner's account privacy requiring an approved edge;
// otherwise public.
func contentVisible(snap *store.Snapshot, viewerID int, item models.ContentItem) bool {
	if item.OwnerID() == viewerID {
		return true
	}
	if item.ItemPrivate() {
		return hasApprovedEdge(snap, viewerID, item.OwnerID())
	}
	return canViewOwner(snap, viewerID, item.OwnerID())
}

// contentVisibleIndexed is the listing-path variant taking a precomputed
// approved-followee set, avoiding an edge scan per item
func contentVisibleIndexed(snap *store.Snapshot, viewerID int, item models.ContentItem, approved map[int]struct{}) bool {
	if item.OwnerID() == viewerID {
		return true
	}
	if item.ItemPrivate() {
		_, ok := approved[item.OwnerID()]
		return ok
	}
	owner := snap.UserByID(item.OwnerID())
	if owner == nil {
		return false
	}
	if !owner.IsPrivate {
		return true
	}
	_, ok := approved[item.OwnerID()]
	return ok
}

func hasApprovedEdge(snap *store.Snapshot, followerID, followingID int) bool {
	edge := snap.FollowEdge(followerID, followingID)
	return edge != nil && edge.Status == models.FollowApproved
}
