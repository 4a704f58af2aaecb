package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

const defaultSummaryWorkers = 8

type summaryService struct {
	pollRepo       ports.PollRepository
	pollResultRepo ports.PollResultRepository
	workers        int
}

func NewSummaryService(pollRepo ports.PollRepository, pollResultRepo ports.PollResultRepository) ports.SummaryService {
	return &summaryService{
		pollRepo:       pollRepo,
		pollResultRepo: pollResultRepo,
		workers:        defaultSummaryWorkers,
	}
}

// SummarizeAllVotes refreshes the materialized counts of every poll. All
// polls are attempted; the returned error joins every failure.
func (s *summaryService) SummarizeAllVotes(ctx context.Context) error {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all polls: %w", err)
	}

	wp := workerpool.New(s.workers)

	var (
		mu   sync.Mutex
		errs []error
	)
	for _, poll := range polls {
		pollID := poll.ID
		wp.Submit(func() {
			if err := s.summarize(ctx, pollID); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}
	wp.StopWait()

	return errors.Join(errs...)
}

func (s *summaryService) summarize(ctx context.Context, pollID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.pollResultRepo.SummarizeVotes(ctx, pollID); err != nil {
		return fmt.Errorf("failed to summarize poll %s: %w", pollID, err)
	}
	return nil
}
