// Package testutil provides database fixtures shared by repository and
// handler tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/quickpoll/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
	"github.com/vncsmyrnk/quickpoll/internal/core/services"
)

// TestVoterSecret signs voter tokens in tests.
const TestVoterSecret = "test-voter-secret"

// OpenSQLite returns a migrated in-memory SQLite database that is closed
// when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, sqlstore.SQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.SQLite))
	return db
}

// OpenPostgres starts a PostgreSQL container and returns a migrated
// connection to it. The container is terminated when the test ends.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlstore.Open(ctx, sqlstore.Postgres, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.Postgres))
	return db
}

// ForEachDialect runs fn against SQLite and, outside -short, PostgreSQL.
func ForEachDialect(t *testing.T, fn func(t *testing.T, db *sql.DB)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		fn(t, OpenSQLite(t))
	})

	t.Run("postgres", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping postgres integration test")
		}
		fn(t, OpenPostgres(t))
	})
}

// CreateTestPoll stores a poll with the given options.
func CreateTestPoll(t *testing.T, db *sql.DB, question string, options ...string) *domain.Poll {
	t.Helper()

	svc := services.NewPollService(sqlstore.NewPollRepository(db))
	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: question,
		Options:  options,
	})
	require.NoError(t, err)
	return poll
}

// CountVoteRows counts ledger rows of a voter in a poll.
func CountVoteRows(t *testing.T, db *sql.DB, pollID uuid.UUID, voterToken string) int {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1 AND voter_token = $2`, pollID, voterToken).Scan(&n)
	require.NoError(t, err)
	return n
}
