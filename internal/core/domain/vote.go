package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is the live choice of one voter in one poll. There is at most one
// per (PollID, VoterToken).
type Vote struct {
	ID         uuid.UUID `json:"id"`
	PollID     uuid.UUID `json:"pollId"`
	OptionID   uuid.UUID `json:"optionId"`
	VoterToken string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// VoterIdentity is the outcome of resolving a request's voter token.
// When Minted is set, Signed must be persisted client-side.
type VoterIdentity struct {
	Token  string
	Signed string
	Minted bool
}
