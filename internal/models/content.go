package models

import (
	"regexp"
	"strings"
	"time"
)

// ContentKind identifies a content item variant
type ContentKind string

const (
	KindPost      ContentKind = "post"
	KindPoll      ContentKind = "poll"
	KindEvent     ContentKind = "event"
	KindSlideshow ContentKind = "slideshow"
	KindAudio     ContentKind = "audio"
	KindStory     ContentKind = "story"
)

// ValidCommentTarget reports whether the kind accepts comments
func ValidCommentTarget(kind ContentKind) bool {
	switch kind {
	case KindPost, KindPoll, KindEvent, KindSlideshow, KindAudio:
		return true
	}
	return false
}

// ContentItem is the common surface of all content variants needed for
// visibility resolution and feed aggregation. Variant payloads stay on the
// concrete structs.
type ContentItem interface {
	ItemID() int
	OwnerID() int
	CreatedTime() time.Time
	// ItemPrivate reports an item-level privacy flag. Only posts carry one;
	// the other variants always return false.
	ItemPrivate() bool
	// ItemTags returns the tags used for soft preference narrowing, nil for
	// untagged variants.
	ItemTags() []string
}

// TagCount is a tag autocomplete result with its usage count
type TagCount struct {
	Tag       string `json:"tag"`
	PostCount int    `json:"postCount"`
}

var tagCleaner = regexp.MustCompile(`[^a-z0-9-_]`)

// SanitizeTags lowercases, strips disallowed characters, deduplicates and
// caps the tag list at ten entries, preserving first-seen order.
func SanitizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		cleaned := tagCleaner.ReplaceAllString(strings.ToLower(tag), "")
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
		if len(out) == 10 {
			break
		}
	}
	return out
}
