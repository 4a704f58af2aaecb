package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollResult is a materialized vote count written by the summarizer job.
// Live tallies never read it.
type PollResult struct {
	PollID        uuid.UUID
	OptionID      uuid.UUID
	VoteCount     int64
	LastUpdatedAt time.Time
}
