package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type OptionTally struct {
	OptionID uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Votes    int64     `json:"votes"`
	Percent  int       `json:"percent"`
}

// Tally is the vote count of a poll at the moment it was read.
type Tally struct {
	PollID     uuid.UUID     `json:"id"`
	Question   string        `json:"question"`
	TotalVotes int64         `json:"totalVotes"`
	Options    []OptionTally `json:"options"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// NewTally builds a tally with one entry per poll option, in poll order.
// Options missing from counts get zero votes.
func NewTally(poll *Poll, counts map[uuid.UUID]int64) *Tally {
	t := &Tally{
		PollID:    poll.ID,
		Question:  poll.Question,
		Options:   make([]OptionTally, 0, len(poll.Options)),
		CreatedAt: poll.CreatedAt,
	}

	for _, opt := range poll.Options {
		n := counts[opt.ID]
		t.Options = append(t.Options, OptionTally{OptionID: opt.ID, Text: opt.Text, Votes: n})
		t.TotalVotes += n
	}

	for i := range t.Options {
		t.Options[i].Percent = Percent(t.Options[i].Votes, t.TotalVotes)
	}

	return t
}

// Percent returns count as a rounded share of total. A zero total yields 0.
func Percent(count, total int64) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
