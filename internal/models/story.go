package models

import "time"

// StoryTTL is how long a story stays visible after creation
const StoryTTL = 24 * time.Hour

// Story represents an ephemeral media item that expires after StoryTTL
type Story struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	MediaURL        string    `json:"media_url"`
	MediaType       string    `json:"media_type"` // "image" or "video"
	Caption         string    `json:"caption"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired reports whether the story has passed its expiry at the given time
func (s *Story) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// StoryView is the story representation returned to callers
type StoryView struct {
	ID              int       `json:"id"`
	MediaURL        string    `json:"mediaUrl"`
	MediaType       string    `json:"mediaType"`
	Caption         string    `json:"caption"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	DurationSeconds *int      `json:"durationSeconds"`
	Author          Author    `json:"author"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL        string `json:"mediaUrl" validate:"required"`
	MediaType       string `json:"mediaType" validate:"required,oneof=image video"`
	Caption         string `json:"caption" validate:"max=500"`
	DurationSeconds *int   `json:"durationSeconds" validate:"omitempty,min=1,max=60"`
}
