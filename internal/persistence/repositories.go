package persistence

import "context"

// VoterRepository exposes the voter store operations required by the election
// console. RecordVote applies a field-level merge so only the voting status
// columns are touched.
type VoterRepository interface {
	UpsertVoter(ctx context.Context, voter Voter) error
	GetVoter(ctx context.Context, email string) (Voter, error)
	RecordVote(ctx context.Context, email, choice string) error
	ListVoters(ctx context.Context) ([]Voter, error)
	ListVotersByStatus(ctx context.Context, hasVoted bool) ([]Voter, error)
	CountVoters(ctx context.Context, hasVoted bool) (int, error)
}
