package models

import "time"

// PollOption is a single poll choice with its running tally
type PollOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Votes int    `json:"votes"`
}

// Poll represents a question with up to six options
type Poll struct {
	ID        int          `json:"id"`
	UserID    int          `json:"user_id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

func (p *Poll) ItemID() int            { return p.ID }
func (p *Poll) OwnerID() int           { return p.UserID }
func (p *Poll) CreatedTime() time.Time { return p.CreatedAt }
func (p *Poll) ItemPrivate() bool      { return false }
func (p *Poll) ItemTags() []string     { return nil }

// Option returns the option with the given id, or nil
func (p *Poll) Option(optionID string) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

// PollVote records a user's single vote on a poll
type PollVote struct {
	PollID    int       `json:"poll_id"`
	UserID    int       `json:"user_id"`
	OptionID  string    `json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PollView is the poll representation returned to callers
type PollView struct {
	ID              int          `json:"id"`
	Question        string       `json:"question"`
	Options         []PollOption `json:"options"`
	CreatedAt       time.Time    `json:"createdAt"`
	Author          Author       `json:"author"`
	ViewerSelection *string      `json:"viewerSelection"`
}

// CreatePollRequest defines the request body for creating a poll
type CreatePollRequest struct {
	Question string   `json:"question" validate:"required,min=1,max=280"`
	Options  []string `json:"options" validate:"required,min=2,max=6,dive,min=1,max=80"`
}
