// Package testfixtures provides deterministic clocks, identifiers and voter
// fixtures for tests across the election console packages.
package testfixtures

import (
	"time"

	"github.com/example/voting-console/internal/application"
	"github.com/example/voting-console/internal/persistence"
)

// ReferenceTime returns the shared fixed instant tests anchor on.
func ReferenceTime() time.Time {
	return time.Date(2025, time.May, 20, 12, 0, 0, 0, time.UTC)
}

// VoterFixture builds voter values for both layers from one description.
type VoterFixture struct {
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	HasVoted   bool
	VoteChoice string
	CreatedAt  time.Time
}

// VoterOption configures a VoterFixture.
type VoterOption func(*VoterFixture)

// NewVoterFixture constructs a fixture with plausible defaults.
func NewVoterFixture(opts ...VoterOption) VoterFixture {
	fixture := VoterFixture{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "+15550100",
		CreatedAt: ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithVoterEmail overrides the email key.
func WithVoterEmail(email string) VoterOption {
	return func(f *VoterFixture) { f.Email = email }
}

// WithVoterName overrides the first and last name.
func WithVoterName(first, last string) VoterOption {
	return func(f *VoterFixture) {
		f.FirstName = first
		f.LastName = last
	}
}

// WithVoterPhone overrides the phone number.
func WithVoterPhone(phone string) VoterOption {
	return func(f *VoterFixture) { f.Phone = phone }
}

// WithVoted marks the fixture as having voted for the given choice.
func WithVoted(choice string) VoterOption {
	return func(f *VoterFixture) {
		f.HasVoted = true
		f.VoteChoice = choice
	}
}

// Application returns the fixture as an application layer voter.
func (f VoterFixture) Application() application.Voter {
	voter := application.Voter{
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		HasVoted:  f.HasVoted,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.CreatedAt,
	}
	if f.HasVoted {
		choice := f.VoteChoice
		voter.VoteChoice = &choice
	}
	return voter
}

// Persistence returns the fixture as a persistence layer voter.
func (f VoterFixture) Persistence() persistence.Voter {
	voter := persistence.Voter{
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		HasVoted:  f.HasVoted,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.CreatedAt,
	}
	if f.HasVoted {
		choice := f.VoteChoice
		voter.VoteChoice = &choice
	}
	return voter
}

// Input returns the fixture as an import input.
func (f VoterFixture) Input() application.VoterInput {
	return application.VoterInput{
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
	}
}
