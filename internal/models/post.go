package models

import "time"

// Post represents a single-media post
type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"` // "image" or "video"
	Caption   string    `json:"caption"`
	Tags      []string  `json:"tags"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Post) ItemID() int            { return p.ID }
func (p *Post) OwnerID() int           { return p.UserID }
func (p *Post) CreatedTime() time.Time { return p.CreatedAt }
func (p *Post) ItemPrivate() bool      { return p.IsPrivate }
func (p *Post) ItemTags() []string     { return p.Tags }

// PostStats carries aggregate reaction counts for a post
type PostStats struct {
	Likes int `json:"likes"`
	Saves int `json:"saves"`
}

// ViewerState carries the requesting viewer's own reaction state
type ViewerState struct {
	Liked   bool `json:"liked"`
	Saved   bool `json:"saved"`
	IsOwner bool `json:"isOwner"`
}

// PostView is the enriched post representation returned to callers
type PostView struct {
	ID           int          `json:"id"`
	MediaURL     string       `json:"mediaUrl"`
	MediaType    string       `json:"mediaType"`
	Caption      string       `json:"caption"`
	Tags         []string     `json:"tags"`
	IsPrivate    bool         `json:"isPrivate"`
	CreatedAt    time.Time    `json:"createdAt"`
	Author       Author       `json:"author"`
	Stats        PostStats    `json:"stats"`
	Viewer       *ViewerState `json:"viewer,omitempty"`
	CommentCount int          `json:"commentCount"`
}

// PostPage is one page of a post listing
type PostPage struct {
	Posts      []PostView `json:"posts"`
	NextCursor string     `json:"nextCursor"`
}

// CreatePostRequest defines the request body for creating a post
type CreatePostRequest struct {
	MediaURL  string   `json:"mediaUrl" validate:"required"`
	MediaType string   `json:"mediaType" validate:"required,oneof=image video"`
	Caption   string   `json:"caption" validate:"max=2200"`
	Tags      []string `json:"tags" validate:"max=10,dive,min=1"`
}

// UpdatePostPrivacyRequest toggles a post's item-level privacy flag
type UpdatePostPrivacyRequest struct {
	IsPrivate bool `json:"isPrivate"`
}
