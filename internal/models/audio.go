package models

import "time"

// AudioNote represents a short voice recording
type AudioNote struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	AudioURL  string    `json:"audio_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AudioNote) ItemID() int            { return a.ID }
func (a *AudioNote) OwnerID() int           { return a.UserID }
func (a *AudioNote) CreatedTime() time.Time { return a.CreatedAt }
func (a *AudioNote) ItemPrivate() bool      { return false }
func (a *AudioNote) ItemTags() []string     { return nil }

// AudioNoteView is the audio note representation returned to callers
type AudioNoteView struct {
	ID        int       `json:"id"`
	AudioURL  string    `json:"audioUrl"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

// CreateAudioNoteRequest defines the request body for creating an audio note
type CreateAudioNoteRequest struct {
	AudioURL string `json:"audioUrl" validate:"required"`
	Caption  string `json:"caption" validate:"max=2200"`
}
