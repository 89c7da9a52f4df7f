package services

import (
	"context"
	"sort"
	"strings"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

const (
	defaultTagResults = 20
	maxTagResults     = 25
)

// TagService provides tag autocomplete over post tags
type TagService interface {
	Search(ctx context.Context, query string, limit int) ([]models.TagCount, error)
}

type tagService struct {
	store store.Store
}

// NewTagService creates a TagService
func NewTagService(st store.Store) TagService {
	return &tagService{store: st}
}

// Search matches the query as a case-insensitive substring against every
// post tag and returns the matches with their post counts, most-used first.
// A blank query returns no results.
func (s *tagService) Search(ctx context.Context, query string, limit int) ([]models.TagCount, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if limit <= 0 {
		limit = defaultTagResults
	}
	if limit > maxTagResults {
		limit = maxTagResults
	}

	results := []models.TagCount{}
	if query == "" {
		return results, nil
	}

	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		counts := make(map[string]int)
		for i := range snap.Posts {
			for _, tag := range snap.Posts[i].Tags {
				if strings.Contains(tag, query) {
					counts[tag]++
				}
			}
		}
		for tag, count := range counts {
			results = append(results, models.TagCount{Tag: tag, PostCount: count})
		}
		sort.Slice(results, func(i, j int) bool {
			if results[i].PostCount != results[j].PostCount {
				return results[i].PostCount > results[j].PostCount
			}
			return results[i].Tag < results[j].Tag
		})
		if len(results) > limit {
			results = results[:limit]
		}
		return nil
	})
	return results, err
}
