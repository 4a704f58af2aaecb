package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type tallyService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewTallyService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.TallyService {
	return &tallyService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// GetTally counts the ledger on every call. Options and question never
// change after creation, so only the counts need a consistent read.
func (s *tallyService) GetTally(ctx context.Context, pollID uuid.UUID) (*domain.Tally, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteRepo.CountVotesByOption(ctx, pollID)
	if err != nil {
		return nil, err
	}

	return domain.NewTally(poll, counts), nil
}
