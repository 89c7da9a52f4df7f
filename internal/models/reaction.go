package models

import "time"

// Reaction associates a user with a post. The same shape backs both the
// likes and the bookmarks collections; uniqueness per (user, post) is
// enforced by the toggle operations.
type Reaction struct {
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionResult is returned by like/save toggles
type ReactionResult struct {
	Count  int  `json:"count"`
	Active bool `json:"active"`
}

// VoteRequest defines the request body for casting a poll vote
type VoteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
}
