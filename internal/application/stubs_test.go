package application_test

import (
	. "github.com/example/voting-console/internal/application"

	"context"
	"sync"
	"time"
)

// voterDirectoryStub is an in-memory VoterDirectory with injectable failures.
type voterDirectoryStub struct {
	mu       sync.Mutex
	voters   map[string]Voter
	order    []string
	getErr   error
	listErr  error
	countErr error
	votes    []string
}

func newVoterDirectoryStub(voters ...Voter) *voterDirectoryStub {
	stub := &voterDirectoryStub{voters: make(map[string]Voter)}
	for _, voter := range voters {
		stub.voters[voter.Email] = voter
		stub.order = append(stub.order, voter.Email)
	}
	return stub
}

func (s *voterDirectoryStub) UpsertVoter(ctx context.Context, voter Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.voters[voter.Email]; !ok {
		s.order = append(s.order, voter.Email)
	}
	s.voters[voter.Email] = voter
	return nil
}

func (s *voterDirectoryStub) GetVoter(ctx context.Context, email string) (Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return Voter{}, s.getErr
	}
	voter, ok := s.voters[email]
	if !ok {
		return Voter{}, ErrVoterNotFound
	}
	return voter, nil
}

func (s *voterDirectoryStub) RecordVote(ctx context.Context, email, choice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[email]
	if !ok {
		return ErrVoterNotFound
	}
	voter.HasVoted = true
	voter.VoteChoice = &choice
	s.voters[email] = voter
	s.votes = append(s.votes, email+":"+choice)
	return nil
}

func (s *voterDirectoryStub) ListVoters(ctx context.Context) ([]Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	voters := make([]Voter, 0, len(s.order))
	for _, email := range s.order {
		voters = append(voters, s.voters[email])
	}
	return voters, nil
}

func (s *voterDirectoryStub) CountVoters(ctx context.Context, hasVoted bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	count := 0
	for _, voter := range s.voters {
		if voter.HasVoted == hasVoted {
			count++
		}
	}
	return count, nil
}

func (s *voterDirectoryStub) voter(email string) (Voter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[email]
	return voter, ok
}

type sentMessage struct {
	Recipient string
	Subject   string
	Body      string
}

// notifierStub records channel attempts and fails selected recipients.
type notifierStub struct {
	mu         sync.Mutex
	emails     []sentMessage
	texts      []sentMessage
	failEmails map[string]error
	failTexts  map[string]error
}

func newNotifierStub() *notifierStub {
	return &notifierStub{
		failEmails: make(map[string]error),
		failTexts:  make(map[string]error),
	}
}

func (s *notifierStub) SendEmail(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failEmails[to]; ok {
		return err
	}
	s.emails = append(s.emails, sentMessage{Recipient: to, Subject: subject, Body: body})
	return nil
}

func (s *notifierStub) SendText(ctx context.Context, phone, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failTexts[phone]; ok {
		return err
	}
	s.texts = append(s.texts, sentMessage{Recipient: phone, Body: body})
	return nil
}

func (s *notifierStub) sentEmails() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMessage, len(s.emails))
	copy(out, s.emails)
	return out
}

func (s *notifierStub) sentTexts() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMessage, len(s.texts))
	copy(out, s.texts)
	return out
}

type reminderCall struct {
	Kind       ReminderKind
	VotingDate time.Time
}

// dispatcherStub records reminder firings for scheduler tests.
type dispatcherStub struct {
	mu    sync.Mutex
	calls []reminderCall
	err   error
}

func (s *dispatcherStub) Dispatch(ctx context.Context, kind ReminderKind, votingDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, reminderCall{Kind: kind, VotingDate: votingDate})
	return s.err
}

func (s *dispatcherStub) recorded() []reminderCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]reminderCall, len(s.calls))
	copy(out, s.calls)
	return out
}
