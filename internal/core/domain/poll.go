package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionMinLen   = 5
	QuestionMaxLen   = 140
	OptionTextMaxLen = 60
	MinOptions       = 2
	MaxOptions       = 6
)

type Poll struct {
	ID        uuid.UUID    `json:"id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	CreatedAt time.Time    `json:"createdAt"`
}

type PollOption struct {
	ID       uuid.UUID `json:"id"`
	PollID   uuid.UUID `json:"pollId"`
	Text     string    `json:"text"`
	Position int       `json:"-"`
}

// HasOption reports whether optionID belongs to the poll.
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
