package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// CastVote records input.OptionID as the voter's current choice. Repeating
// a vote, with the same or another option, never adds a ledger row.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) error {
	if input.VoterToken == "" {
		return domain.Invalid("voter token required")
	}
	if input.OptionID == uuid.Nil {
		return domain.Invalid("optionId required")
	}

	opt, err := s.pollRepo.GetOption(ctx, input.OptionID)
	if err != nil && !errors.Is(err, domain.ErrInvalidOption) {
		return err
	}
	if opt == nil || opt.PollID != input.PollID {
		// Only the poll decides between a missing resource and a bad option.
		if _, err := s.pollRepo.GetByID(ctx, input.PollID); err != nil {
			return err
		}
		return domain.ErrInvalidOption
	}

	now := time.Now().UTC()
	vote := &domain.Vote{
		ID:         uuid.New(),
		PollID:     input.PollID,
		OptionID:   input.OptionID,
		VoterToken: input.VoterToken,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.voteRepo.UpsertVote(ctx, vote)
}

func (s *voteService) GetVote(ctx context.Context, pollID uuid.UUID, voterToken string) (*domain.Vote, error) {
	if voterToken == "" {
		return nil, domain.ErrVoteNotFound
	}
	return s.voteRepo.GetVote(ctx, pollID, voterToken)
}
