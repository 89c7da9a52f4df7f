package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the stored user record
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatar_url"`
	Bio          string    `json:"bio"`
	Theme        string    `json:"theme"` // "light" or "dark"
	FavoriteTags []string  `json:"favorite_tags"`
	IsPrivate    bool      `json:"is_private"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user is an administrator. Admins are the
// users whose email appears in the configured list; with no list configured,
// the first registered user is treated as the admin.
func (u *User) IsAdmin(adminEmails []string) bool {
	if len(adminEmails) == 0 {
		return u.ID == 1
	}
	for _, email := range adminEmails {
		if strings.EqualFold(strings.TrimSpace(email), u.Email) {
			return true
		}
	}
	return false
}

// Author is the embedded author summary returned with content items
type Author struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// Summary returns the user's author summary for embedding in views
func (u *User) Summary() Author {
	return Author{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// UserView is the user representation returned to callers
type UserView struct {
	ID           int      `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	AvatarURL    *string  `json:"avatar_url"`
	Bio          string   `json:"bio"`
	Theme        string   `json:"theme"`
	FavoriteTags []string `json:"favorite_tags"`
	IsPrivate    bool     `json:"is_private"`
}

// View returns the externally visible representation of the user
func (u *User) View() UserView {
	tags := u.FavoriteTags
	if tags == nil {
		tags = []string{}
	}
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		AvatarURL:    u.AvatarURL,
		Bio:          u.Bio,
		Theme:        u.Theme,
		FavoriteTags: tags,
		IsPrivate:    u.IsPrivate,
	}
}

// UserStats aggregates profile numbers shown on a user's page
type UserStats struct {
	FollowerCount  int `json:"followerCount"`
	FollowingCount int `json:"followingCount"`
	PostCount      int `json:"postCount"`
	TotalLikes     int `json:"totalLikes"`
}

// RegisterRequest defines the request body for registering a new user
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=300"`
	Theme        *string  `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	FavoriteTags []string `json:"favorite_tags,omitempty" validate:"omitempty,max=10"`
	AvatarURL    *string  `json:"avatar_url,omitempty"`
	IsPrivate    *bool    `json:"is_private,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
