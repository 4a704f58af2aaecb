package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
)

type VoteRepository interface {
	// UpsertVote creates the voter's vote or repoints it at vote.OptionID.
	// Uniqueness of (poll, voter) is enforced by the store.
	UpsertVote(ctx context.Context, vote *domain.Vote) error
	GetVote(ctx context.Context, pollID uuid.UUID, voterToken string) (*domain.Vote, error)
	// CountVotesByOption returns a count for every option of the poll,
	// including options without votes.
	CountVotesByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

type CastVoteInput struct {
	PollID     uuid.UUID
	OptionID   uuid.UUID
	VoterToken string
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) error
	GetVote(ctx context.Context, pollID uuid.UUID, voterToken string) (*domain.Vote, error)
}
