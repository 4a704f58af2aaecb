package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
)

type TallyService interface {
	GetTally(ctx context.Context, pollID uuid.UUID) (*domain.Tally, error)
}
