package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// UpsertVote relies on UNIQUE (poll_id, voter_token) to resolve concurrent
// votes of one voter: the statement either inserts or repoints the existing
// row, never both. The composite foreign key rejects options of other polls.
func (r *voteRepository) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, option_id, voter_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (poll_id, voter_token) DO UPDATE
		SET option_id = EXCLUDED.option_id,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.PollID, vote.OptionID, vote.VoterToken, vote.CreatedAt, vote.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidOption
		}
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetVote(ctx context.Context, pollID uuid.UUID, voterToken string) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, voter_token, created_at, updated_at
		FROM votes
		WHERE poll_id = $1 AND voter_token = $2
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, voterToken).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.VoterToken, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

// CountVotesByOption counts in a single statement so the per-option counts
// come from one snapshot of the ledger.
func (r *voteRepository) CountVotesByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT o.id, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var (
			optionID uuid.UUID
			count    int64
		)
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}
