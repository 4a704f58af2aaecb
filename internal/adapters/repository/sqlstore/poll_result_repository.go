package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

// SummarizeVotes writes one row per option, so options that lost all of
// their votes are reset to zero.
func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, option_id, vote_count, last_updated_at)
		SELECT o.poll_id, o.id, COUNT(v.id), CURRENT_TIMESTAMP
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.poll_id, o.id
		ON CONFLICT (poll_id, option_id) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = EXCLUDED.last_updated_at
	`

	_, err := r.db.ExecContext(ctx, query, pollID)
	if err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}

	return nil
}

func (r *pollResultRepository) GetResults(ctx context.Context, pollID uuid.UUID) ([]domain.PollResult, error) {
	query := `
		SELECT pr.poll_id, pr.option_id, pr.vote_count, pr.last_updated_at
		FROM poll_results pr
		JOIN poll_options o ON o.id = pr.option_id
		WHERE pr.poll_id = $1
		ORDER BY o.sort_order
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for poll %s: %w", pollID, err)
	}
	defer rows.Close()

	results := []domain.PollResult{}
	for rows.Next() {
		var res domain.PollResult
		if err := rows.Scan(&res.PollID, &res.OptionID, &res.VoteCount, &res.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
