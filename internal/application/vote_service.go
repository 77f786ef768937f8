package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// VoterDirectory captures the voter store interactions needed by the services.
type VoterDirectory interface {
	UpsertVoter(ctx context.Context, voter Voter) error
	GetVoter(ctx context.Context, email string) (Voter, error)
	RecordVote(ctx context.Context, email, choice string) error
	ListVoters(ctx context.Context) ([]Voter, error)
	CountVoters(ctx context.Context, hasVoted bool) (int, error)
}

// VoteService validates and applies votes and issues confirmations.
type VoteService struct {
	voters   VoterDirectory
	notifier Notifier
	now      func() time.Time
	logger   *slog.Logger
}

// NewVoteService wires dependencies for vote operations.
func NewVoteService(voters VoterDirectory, notifier Notifier, now func() time.Time, logger *slog.Logger) *VoteService {
	if now == nil {
		now = time.Now
	}
	return &VoteService{
		voters:   voters,
		notifier: notifier,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// RecordVote marks the voter as having voted with the supplied choice and
// sends one confirmation per channel from the post-update snapshot. The voter
// must already exist; any choice string is accepted, and a voter who has
// already voted may vote again, overwriting the previous choice.
func (s *VoteService) RecordVote(ctx context.Context, email, choice string) (Voter, error) {
	if s == nil {
		return Voter{}, fmt.Errorf("VoteService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "vote", "record_vote", "voter", email)

	email = strings.TrimSpace(email)
	voter, err := s.voters.GetVoter(ctx, email)
	if err != nil {
		logger.Warn("vote rejected", "kind", ErrorKind(err))
		return Voter{}, err
	}

	if err := s.voters.RecordVote(ctx, email, choice); err != nil {
		return Voter{}, err
	}

	voter.HasVoted = true
	voter.VoteChoice = &choice
	voter.UpdatedAt = s.now()

	logger.Info("vote recorded", "choice", choice)

	notifyVoter(ctx, logger, s.notifier, voter,
		confirmationSubject(),
		confirmationEmailBody(voter, choice),
		confirmationTextBody(voter, choice),
	)

	return voter, nil
}

// GetVoterStatus retrieves a single voter record.
func (s *VoteService) GetVoterStatus(ctx context.Context, email string) (Voter, error) {
	if s == nil {
		return Voter{}, fmt.Errorf("VoteService is nil")
	}
	return s.voters.GetVoter(ctx, strings.TrimSpace(email))
}

// ListVoters enumerates all registered voters.
func (s *VoteService) ListVoters(ctx context.Context) ([]Voter, error) {
	if s == nil {
		return nil, fmt.Errorf("VoteService is nil")
	}
	return s.voters.ListVoters(ctx)
}

// ImportVoters upserts the supplied voter records and returns the number
// stored. Imported voters start with HasVoted false and no choice.
func (s *VoteService) ImportVoters(ctx context.Context, inputs []VoterInput) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("VoteService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "vote", "import_voters")

	imported := 0
	for _, input := range inputs {
		voter := Voter{
			Email:        strings.TrimSpace(input.Email),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			StreetNumber: input.StreetNumber,
			StreetName:   input.StreetName,
			City:         input.City,
			PostalCode:   input.PostalCode,
			Phone:        input.Phone,
		}
		if voter.Email == "" {
			logger.Warn("skipping voter without email", "name", voter.FirstName+" "+voter.LastName)
			continue
		}
		if err := s.voters.UpsertVoter(ctx, voter); err != nil {
			return imported, fmt.Errorf("failed to import voter %s: %w", voter.Email, err)
		}
		imported++
	}

	logger.Info("voters imported", "count", imported)
	return imported, nil
}
