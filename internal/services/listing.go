package services

import (
	"sort"
	"time"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// ListOptions filter and paginate a content listing
type ListOptions struct {
	// OwnerID restricts the listing to one owner's items
	OwnerID *int
	// ExcludeOwnerID drops one owner's items; ignored when OwnerID is set
	ExcludeOwnerID *int
	// Limit is clamped to maxPageSize; zero means defaultPageSize
	Limit int
	// Cursor is an RFC 3339 timestamp; only items created strictly before
	// it are returned
	Cursor string
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func parseCursor(cursor string) (time.Time, error) {
	if cursor == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return time.Time{}, invalidf("cursor %q is not a timestamp", cursor)
	}
	return t, nil
}

func formatCursor(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// filterContent applies the aggregation pipeline to a candidate set:
// newest-first ordering, the cursor bound, owner filters, per-item
// visibility (via a precomputed approved-followee set), the soft tag
// preference narrowing, and pagination. The returned cursor is the creation
// timestamp of the last item on the page, empty when the listing is
// exhausted.
func filterContent(snap *store.Snapshot, viewerID int, items []models.ContentItem, opts ListOptions, preferredTags []string) ([]models.ContentItem, string, error) {
	cursor, err := parseCursor(opts.Cursor)
	if err != nil {
		return nil, "", err
	}
	limit := clampLimit(opts.Limit)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedTime().After(items[j].CreatedTime())
	})

	approved := snap.ApprovedFollowingSet(viewerID)

	filtered := items[:0]
	for _, item := range items {
		if !cursor.IsZero() && !item.CreatedTime().Before(cursor) {
			continue
		}
		if opts.OwnerID != nil {
			if item.OwnerID() != *opts.OwnerID {
				continue
			}
		} else if opts.ExcludeOwnerID != nil && item.OwnerID() == *opts.ExcludeOwnerID {
			continue
		}
		if !contentVisibleIndexed(snap, viewerID, item, approved) {
			continue
		}
		filtered = append(filtered, item)
	}

	filtered = narrowByTags(filtered, preferredTags)

	if len(filtered) <= limit {
		return filtered, "", nil
	}
	page := filtered[:limit]
	return page, formatCursor(page[len(page)-1].CreatedTime()), nil
}

// narrowByTags keeps only tag-matching items when the viewer has preferred
// tags and at least one item matches. When nothing matches the full set is
// returned unchanged: the preference is a ranking heuristic and must never
// empty a result set on its own.
func narrowByTags(items []models.ContentItem, preferredTags []string) []models.ContentItem {
	if len(preferredTags) == 0 {
		return items
	}
	preferred := make(map[string]struct{}, len(preferredTags))
	for _, tag := range preferredTags {
		preferred[tag] = struct{}{}
	}
	var matching []models.ContentItem
	for _, item := range items {
		for _, tag := range item.ItemTags() {
			if _, ok := preferred[tag]; ok {
				matching = append(matching, item)
				break
			}
		}
	}
	if len(matching) == 0 {
		return items
	}
	return matching
}

// reactionMaps hold per-listing enrichment state, built once per call so
// that enriching a page costs O(items), not O(items * reactions)
type reactionMaps struct {
	likeCounts  map[int]int
	saveCounts  map[int]int
	viewerLikes map[int]struct{}
	viewerSaves map[int]struct{}
}

func buildReactionMaps(snap *store.Snapshot, viewerID int) reactionMaps {
	m := reactionMaps{
		likeCounts:  make(map[int]int),
		saveCounts:  make(map[int]int),
		viewerLikes: make(map[int]struct{}),
		viewerSaves: make(map[int]struct{}),
	}
	for i := range snap.Likes {
		r := &snap.Likes[i]
		m.likeCounts[r.PostID]++
		if r.UserID == viewerID {
			m.viewerLikes[r.PostID] = struct{}{}
		}
	}
	for i := range snap.Bookmarks {
		r := &snap.Bookmarks[i]
		m.saveCounts[r.PostID]++
		if r.UserID == viewerID {
			m.viewerSaves[r.PostID] = struct{}{}
		}
	}
	return m
}

func buildCommentCounts(snap *store.Snapshot) map[int]int {
	counts := make(map[int]int)
	for i := range snap.Comments {
		c := &snap.Comments[i]
		if c.TargetType == models.KindPost {
			counts[c.TargetID]++
		}
	}
	return counts
}

// isAdminUser resolves the typed user record and applies the capability
// check; unknown users are never admins
func isAdminUser(snap *store.Snapshot, userID int, adminEmails []string) bool {
	u := snap.UserByID(userID)
	return u != nil && u.IsAdmin(adminEmails)
}
