package models

import "time"

// Slideshow represents an ordered gallery of media
type Slideshow struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MediaURLs []string  `json:"media_urls"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Slideshow) ItemID() int            { return s.ID }
func (s *Slideshow) OwnerID() int           { return s.UserID }
func (s *Slideshow) CreatedTime() time.Time { return s.CreatedAt }
func (s *Slideshow) ItemPrivate() bool      { return false }
func (s *Slideshow) ItemTags() []string     { return nil }

// SlideshowView is the slideshow representation returned to callers
type SlideshowView struct {
	ID        int       `json:"id"`
	Caption   string    `json:"caption"`
	MediaURLs []string  `json:"mediaUrls"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

// CreateSlideshowRequest defines the request body for creating a slideshow
type CreateSlideshowRequest struct {
	MediaURLs []string `json:"mediaUrls" validate:"required,min=1,max=20,dive,required"`
	Caption   string   `json:"caption" validate:"max=2200"`
}
