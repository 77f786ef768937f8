package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/voting-console/internal/persistence"
)

// VoterRepository implements persistence.VoterRepository using SQLite.
type VoterRepository struct {
	pool *ConnectionPool
}

// NewVoterRepository creates a new SQLite voter repository.
func NewVoterRepository(pool *ConnectionPool) *VoterRepository {
	return &VoterRepository{pool: pool}
}

const voterColumns = `email, first_name, last_name, street_number, street_name, city, postal_code, phone, has_voted, vote_choice, created_at, updated_at`

// UpsertVoter inserts a voter record or replaces the identity fields of an
// existing one. The voting status columns of an existing record are preserved.
func (r *VoterRepository) UpsertVoter(ctx context.Context, voter persistence.Voter) error {
	email := normalizeEmail(voter.Email)
	if email == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if voter.CreatedAt.IsZero() {
		voter.CreatedAt = now
	}
	voter.UpdatedAt = now

	query := `
		INSERT INTO voters (` + voterColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			street_number = excluded.street_number,
			street_name = excluded.street_name,
			city = excluded.city,
			postal_code = excluded.postal_code,
			phone = excluded.phone,
			updated_at = excluded.updated_at
	`

	_, err := r.pool.DB().ExecContext(ctx, query,
		email,
		voter.FirstName,
		voter.LastName,
		voter.StreetNumber,
		voter.StreetName,
		voter.City,
		voter.PostalCode,
		voter.Phone,
		voter.HasVoted,
		voter.VoteChoice,
		voter.CreatedAt.Format(time.RFC3339),
		voter.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetVoter retrieves a voter by email.
func (r *VoterRepository) GetVoter(ctx context.Context, email string) (persistence.Voter, error) {
	email = normalizeEmail(email)
	if email == "" {
		return persistence.Voter{}, persistence.ErrNotFound
	}

	query := `SELECT ` + voterColumns + ` FROM voters WHERE email = ?`
	row := r.pool.DB().QueryRowContext(ctx, query, email)

	voter, err := scanVoter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Voter{}, persistence.ErrNotFound
		}
		return persistence.Voter{}, err
	}
	return voter, nil
}

// RecordVote marks a voter as having voted with the supplied choice. Only the
// voting status columns are touched so concurrent identity updates are not
// clobbered.
func (r *VoterRepository) RecordVote(ctx context.Context, email, choice string) error {
	email = normalizeEmail(email)
	if email == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE voters
		SET has_voted = 1, vote_choice = ?, updated_at = ?
		WHERE email = ?
	`

	result, err := r.pool.DB().ExecContext(ctx, query, choice, time.Now().UTC().Format(time.RFC3339), email)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListVoters returns all voters ordered by creation timestamp then email.
func (r *VoterRepository) ListVoters(ctx context.Context) ([]persistence.Voter, error) {
	query := `SELECT ` + voterColumns + ` FROM voters ORDER BY created_at ASC, email ASC`
	return r.queryVoters(ctx, query)
}

// ListVotersByStatus returns all voters matching the supplied voting status.
func (r *VoterRepository) ListVotersByStatus(ctx context.Context, hasVoted bool) ([]persistence.Voter, error) {
	query := `SELECT ` + voterColumns + ` FROM voters WHERE has_voted = ? ORDER BY created_at ASC, email ASC`
	return r.queryVoters(ctx, query, hasVoted)
}

// CountVoters returns the number of voters matching the supplied voting status.
func (r *VoterRepository) CountVoters(ctx context.Context, hasVoted bool) (int, error) {
	var count int
	err := r.pool.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM voters WHERE has_voted = ?`, hasVoted).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *VoterRepository) queryVoters(ctx context.Context, query string, args ...any) ([]persistence.Voter, error) {
	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var voters []persistence.Voter
	for rows.Next() {
		voter, err := scanVoter(rows)
		if err != nil {
			return nil, err
		}
		voters = append(voters, voter)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return voters, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoter(row rowScanner) (persistence.Voter, error) {
	var voter persistence.Voter
	var voteChoice sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&voter.Email,
		&voter.FirstName,
		&voter.LastName,
		&voter.StreetNumber,
		&voter.StreetName,
		&voter.City,
		&voter.PostalCode,
		&voter.Phone,
		&voter.HasVoted,
		&voteChoice,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Voter{}, err
	}

	if voteChoice.Valid {
		choice := voteChoice.String
		voter.VoteChoice = &choice
	}
	if voter.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Voter{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if voter.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Voter{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return voter, nil
}
