package main

import (
	"context"
	"errors"

	"github.com/example/voting-console/internal/application"
	"github.com/example/voting-console/internal/persistence"
)

// voterDirectoryAdapter bridges the persistence repository to the application
// layer's VoterDirectory contract.
type voterDirectoryAdapter struct {
	repo persistence.VoterRepository
}

func newVoterDirectoryAdapter(repo persistence.VoterRepository) *voterDirectoryAdapter {
	return &voterDirectoryAdapter{repo: repo}
}

func (a *voterDirectoryAdapter) UpsertVoter(ctx context.Context, voter application.Voter) error {
	return a.repo.UpsertVoter(ctx, toPersistenceVoter(voter))
}

func (a *voterDirectoryAdapter) GetVoter(ctx context.Context, email string) (application.Voter, error) {
	stored, err := a.repo.GetVoter(ctx, email)
	if err != nil {
		return application.Voter{}, mapVoterError(err)
	}
	return toApplicationVoter(stored), nil
}

func (a *voterDirectoryAdapter) RecordVote(ctx context.Context, email, choice string) error {
	if err := a.repo.RecordVote(ctx, email, choice); err != nil {
		return mapVoterError(err)
	}
	return nil
}

func (a *voterDirectoryAdapter) ListVoters(ctx context.Context) ([]application.Voter, error) {
	models, err := a.repo.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	voters := make([]application.Voter, 0, len(models))
	for _, model := range models {
		voters = append(voters, toApplicationVoter(model))
	}
	return voters, nil
}

func (a *voterDirectoryAdapter) CountVoters(ctx context.Context, hasVoted bool) (int, error) {
	return a.repo.CountVoters(ctx, hasVoted)
}

func mapVoterError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrVoterNotFound
	}
	return err
}

func toApplicationVoter(model persistence.Voter) application.Voter {
	return application.Voter{
		Email:        model.Email,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		StreetNumber: model.StreetNumber,
		StreetName:   model.StreetName,
		City:         model.City,
		PostalCode:   model.PostalCode,
		Phone:        model.Phone,
		HasVoted:     model.HasVoted,
		VoteChoice:   cloneString(model.VoteChoice),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toPersistenceVoter(voter application.Voter) persistence.Voter {
	return persistence.Voter{
		Email:        voter.Email,
		FirstName:    voter.FirstName,
		LastName:     voter.LastName,
		StreetNumber: voter.StreetNumber,
		StreetName:   voter.StreetName,
		City:         voter.City,
		PostalCode:   voter.PostalCode,
		Phone:        voter.Phone,
		HasVoted:     voter.HasVoted,
		VoteChoice:   cloneString(voter.VoteChoice),
		CreatedAt:    voter.CreatedAt,
		UpdatedAt:    voter.UpdatedAt,
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
