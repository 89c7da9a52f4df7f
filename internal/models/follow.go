package models

import "time"

// FollowStatus is the state of a follow edge
type FollowStatus string

const (
	FollowNone     FollowStatus = "none"
	FollowPending  FollowStatus = "pending"
	FollowApproved FollowStatus = "approved"
)

// Follow is a directional relationship between two users, unique per
// ordered (follower, following) pair
type Follow struct {
	FollowerID  int          `json:"follower_id"`
	FollowingID int          `json:"following_id"`
	Status      FollowStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// FollowState is returned by follow/unfollow operations
type FollowState struct {
	FollowerCount int  `json:"followerCount"`
	IsFollowing   bool `json:"isFollowing"`
	IsPending     bool `json:"isPending"`
}

// FollowRequestView is one pending follow request shown to an account owner
type FollowRequestView struct {
	ID        int       `json:"id"` // follower's user id
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}
