package models

import "time"

// Event represents a scheduled gathering
type Event struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) ItemID() int            { return e.ID }
func (e *Event) OwnerID() int           { return e.UserID }
func (e *Event) CreatedTime() time.Time { return e.CreatedAt }
func (e *Event) ItemPrivate() bool      { return false }
func (e *Event) ItemTags() []string     { return nil }

// EventRSVP records a user's attendance on an event
type EventRSVP struct {
	EventID   int       `json:"event_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventStats carries aggregate numbers for an event
type EventStats struct {
	RSVPs int `json:"rsvps"`
}

// EventView is the event representation returned to callers
type EventView struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Author      Author     `json:"author"`
	Stats       EventStats `json:"stats"`
	ViewerRSVP  *bool      `json:"viewerRsvp,omitempty"`
}

// CreateEventRequest defines the request body for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=120"`
	Description string    `json:"description" validate:"max=2200"`
	Location    string    `json:"location" validate:"required,min=1,max=200"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
}

// RSVPRequest toggles the viewer's attendance
type RSVPRequest struct {
	Attending bool `json:"attending"`
}
