package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/connectsphere/backend/internal/models"
)

// Counters hold the per-collection id sequences
type Counters struct {
	Users         int `json:"users"`
	Posts         int `json:"posts"`
	Stories       int `json:"stories"`
	Polls         int `json:"polls"`
	Events        int `json:"events"`
	Slideshows    int `json:"slideshows"`
	Audios        int `json:"audios"`
	Reports       int `json:"reports"`
	Comments      int `json:"comments"`
	Notifications int `json:"notifications"`
}

// Snapshot is the full persisted state of the application. Update callbacks
// receive a private copy and mutate it in memory; the store persists it
// atomically afterwards.
type Snapshot struct {
	Counters      Counters              `json:"counters"`
	Users         []models.User         `json:"users"`
	Posts         []models.Post         `json:"posts"`
	Stories       []models.Story        `json:"stories"`
	Polls         []models.Poll         `json:"polls"`
	PollVotes     []models.PollVote     `json:"poll_votes"`
	Events        []models.Event        `json:"events"`
	EventRSVPs    []models.EventRSVP    `json:"event_rsvps"`
	Slideshows    []models.Slideshow    `json:"slideshows"`
	AudioNotes    []models.AudioNote    `json:"audios"`
	Reports       []models.Report       `json:"reports"`
	Comments      []models.Comment      `json:"comments"`
	Follows       []models.Follow       `json:"followers"`
	Likes         []models.Reaction     `json:"likes"`
	Bookmarks     []models.Reaction     `json:"bookmarks"`
	Notifications []models.Notification `json:"notifications"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Clone deep-copies the snapshot via a JSON round trip
func (s *Snapshot) Clone() (*Snapshot, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	var out Snapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &out, nil
}

// UserByID returns the stored user with the given id, or nil
func (s *Snapshot) UserByID(id int) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// PostByID returns the stored post with the given id, or nil
func (s *Snapshot) PostByID(id int) *models.Post {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return &s.Posts[i]
		}
	}
	return nil
}

// PollByID returns the stored poll with the given id, or nil
func (s *Snapshot) PollByID(id int) *models.Poll {
	for i := range s.Polls {
		if s.Polls[i].ID == id {
			return &s.Polls[i]
		}
	}
	return nil
}

// EventByID returns the stored event with the given id, or nil
func (s *Snapshot) EventByID(id int) *models.Event {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return &s.Events[i]
		}
	}
	return nil
}

// SlideshowByID returns the stored slideshow with the given id, or nil
func (s *Snapshot) SlideshowByID(id int) *models.Slideshow {
	for i := range s.Slideshows {
		if s.Slideshows[i].ID == id {
			return &s.Slideshows[i]
		}
	}
	return nil
}

// AudioNoteByID returns the stored audio note with the given id, or nil
func (s *Snapshot) AudioNoteByID(id int) *models.AudioNote {
	for i := range s.AudioNotes {
		if s.AudioNotes[i].ID == id {
			return &s.AudioNotes[i]
		}
	}
	return nil
}

// CommentByID returns the stored comment with the given id, or nil
func (s *Snapshot) CommentByID(id int) *models.Comment {
	for i := range s.Comments {
		if s.Comments[i].ID == id {
			return &s.Comments[i]
		}
	}
	return nil
}

// ContentByKind resolves a content item of the given kind, or nil
func (s *Snapshot) ContentByKind(kind models.ContentKind, id int) models.ContentItem {
	switch kind {
	case models.KindPost:
		if p := s.PostByID(id); p != nil {
			return p
		}
	case models.KindPoll:
		if p := s.PollByID(id); p != nil {
			return p
		}
	case models.KindEvent:
		if e := s.EventByID(id); e != nil {
			return e
		}
	case models.KindSlideshow:
		if sl := s.SlideshowByID(id); sl != nil {
			return sl
		}
	case models.KindAudio:
		if a := s.AudioNoteByID(id); a != nil {
			return a
		}
	}
	return nil
}

// UserByName returns the user with the given name, compared
// case-insensitively, or nil
func (s *Snapshot) UserByName(name string) *models.User {
	for i := range s.Users {
		if strings.EqualFold(s.Users[i].Name, name) {
			return &s.Users[i]
		}
	}
	return nil
}

// UserByEmail returns the user with the given email, compared
// case-insensitively, or nil
func (s *Snapshot) UserByEmail(email string) *models.User {
	for i := range s.Users {
		if strings.EqualFold(s.Users[i].Email, email) {
			return &s.Users[i]
		}
	}
	return nil
}

// FollowEdge returns the follow edge for the ordered pair, or nil
func (s *Snapshot) FollowEdge(followerID, followingID int) *models.Follow {
	for i := range s.Follows {
		if s.Follows[i].FollowerID == followerID && s.Follows[i].FollowingID == followingID {
			return &s.Follows[i]
		}
	}
	return nil
}

// RemoveFollowEdge deletes the edge for the ordered pair, reporting whether
// one existed
func (s *Snapshot) RemoveFollowEdge(followerID, followingID int) bool {
	for i := range s.Follows {
		if s.Follows[i].FollowerID == followerID && s.Follows[i].FollowingID == followingID {
			s.Follows = append(s.Follows[:i], s.Follows[i+1:]...)
			return true
		}
	}
	return false
}

// ApprovedFollowerCount counts approved edges pointing at the user
func (s *Snapshot) ApprovedFollowerCount(userID int) int {
	n := 0
	for i := range s.Follows {
		if s.Follows[i].FollowingID == userID && s.Follows[i].Status == models.FollowApproved {
			n++
		}
	}
	return n
}

// ApprovedFollowingCount counts approved edges leaving the user
func (s *Snapshot) ApprovedFollowingCount(userID int) int {
	n := 0
	for i := range s.Follows {
		if s.Follows[i].FollowerID == userID && s.Follows[i].Status == models.FollowApproved {
			n++
		}
	}
	return n
}

// ApprovedFollowingSet returns the ids the viewer follows with approved
// status, for O(1) membership checks on listing paths
func (s *Snapshot) ApprovedFollowingSet(viewerID int) map[int]struct{} {
	set := make(map[int]struct{})
	for i := range s.Follows {
		if s.Follows[i].FollowerID == viewerID && s.Follows[i].Status == models.FollowApproved {
			set[s.Follows[i].FollowingID] = struct{}{}
		}
	}
	return set
}
