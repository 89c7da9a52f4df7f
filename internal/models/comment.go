package models

import "time"

// Comment belongs to a content target and may be a single-level reply
type Comment struct {
	ID              int         `json:"id"`
	TargetType      ContentKind `json:"target_type"`
	TargetID        int         `json:"target_id"`
	UserID          int         `json:"user_id"`
	Content         string      `json:"content"`
	ParentCommentID *int        `json:"parent_comment_id"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CommentView is the comment representation returned to callers
type CommentView struct {
	ID              int         `json:"id"`
	TargetType      ContentKind `json:"targetType"`
	TargetID        int         `json:"targetId"`
	ParentCommentID *int        `json:"parentCommentId"`
	Content         string      `json:"content"`
	CreatedAt       time.Time   `json:"createdAt"`
	Author          Author      `json:"author"`
	RepliesCount    int         `json:"repliesCount"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	TargetType      ContentKind `json:"targetType" validate:"required,oneof=post poll event slideshow audio"`
	TargetID        int         `json:"targetId" validate:"required,min=1"`
	Content         string      `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID *int        `json:"parentCommentId" validate:"omitempty,min=1"`
}
