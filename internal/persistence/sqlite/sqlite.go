package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/voting-console/internal/persistence"
)

const votersSchema = `
CREATE TABLE IF NOT EXISTS voters (
	email TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	street_number TEXT NOT NULL DEFAULT '',
	street_name TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	has_voted INTEGER NOT NULL DEFAULT 0,
	vote_choice TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_voters_has_voted ON voters(has_voted);
`

// Store provides the SQLite-backed voter repository.
type Store struct {
	pool *ConnectionPool
}

// Open creates a Store for the supplied DSN.
func Open(dsn string) (*Store, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Migrate applies the voter table schema. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.DB().ExecContext(ctx, votersSchema); err != nil {
		return fmt.Errorf("failed to apply voter schema: %w", err)
	}
	return nil
}

// Voters returns the repository backed by this store.
func (s *Store) Voters() persistence.VoterRepository {
	return NewVoterRepository(s.pool)
}

// mapError converts raw driver errors into persistence sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "NOT NULL constraint failed") {
		return persistence.ErrConstraintViolation
	}
	return err
}

// normalizeEmail normalizes email addresses for consistent storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
