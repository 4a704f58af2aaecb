package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
)

type PollResultRepository interface {
	SummarizeVotes(ctx context.Context, pollID uuid.UUID) error
	GetResults(ctx context.Context, pollID uuid.UUID) ([]domain.PollResult, error)
}

type SummaryService interface {
	SummarizeAllVotes(ctx context.Context) error
}
