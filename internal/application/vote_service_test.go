package application_test

import (
	. "github.com/example/voting-console/internal/application"

	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/voting-console/internal/testfixtures"
)

func TestVoteService_RecordVote_UnknownVoter(t *testing.T) {
	t.Parallel()

	directory := newVoterDirectoryStub()
	notifier := newNotifierStub()
	svc := NewVoteService(directory, notifier, testfixtures.NewClock(time.Time{}).NowFunc(), nil)

	_, err := svc.RecordVote(context.Background(), "ghost@example.com", "Alpha")
	if !errors.Is(err, ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}

	if len(directory.votes) != 0 {
		t.Fatalf("expected no store mutation, got %d votes", len(directory.votes))
	}
	if len(notifier.sentEmails()) != 0 || len(notifier.sentTexts()) != 0 {
		t.Fatal("expected no notification attempts for unknown voter")
	}
}

func TestVoteService_RecordVote_MarksVoterAndConfirms(t *testing.T) {
	t.Parallel()

	alice := testfixtures.NewVoterFixture().Application()
	directory := newVoterDirectoryStub(alice)
	notifier := newNotifierStub()
	svc := NewVoteService(directory, notifier, testfixtures.NewClock(time.Time{}).NowFunc(), nil)

	recorded, err := svc.RecordVote(context.Background(), alice.Email, "Alpha")
	if err != nil {
		t.Fatalf("RecordVote returned error: %v", err)
	}

	if !recorded.HasVoted {
		t.Fatal("expected snapshot to have voted")
	}
	if recorded.VoteChoice == nil || *recorded.VoteChoice != "Alpha" {
		t.Fatalf("expected choice Alpha, got %v", recorded.VoteChoice)
	}

	stored, _ := directory.voter(alice.Email)
	if !stored.HasVoted || stored.VoteChoice == nil || *stored.VoteChoice != "Alpha" {
		t.Fatalf("expected stored record to carry the vote, got %+v", stored)
	}

	emails := notifier.sentEmails()
	texts := notifier.sentTexts()
	if len(emails) != 1 || emails[0].Recipient != alice.Email {
		t.Fatalf("expected exactly one email to %s, got %v", alice.Email, emails)
	}
	if emails[0].Subject != "Voting Confirmation" {
		t.Fatalf("unexpected subject %q", emails[0].Subject)
	}
	if !strings.Contains(emails[0].Body, "your vote for Alpha has been recorded") {
		t.Fatalf("unexpected email body: %q", emails[0].Body)
	}
	if len(texts) != 1 || texts[0].Recipient != alice.Phone {
		t.Fatalf("expected exactly one text to %s, got %v", alice.Phone, texts)
	}
}

func TestVoteService_RecordVote_RepeatVoteOverwritesChoice(t *testing.T) {
	t.Parallel()

	alice := testfixtures.NewVoterFixture(testfixtures.WithVoted("Alpha")).Application()
	directory := newVoterDirectoryStub(alice)
	notifier := newNotifierStub()
	svc := NewVoteService(directory, notifier, nil, nil)

	if _, err := svc.RecordVote(context.Background(), alice.Email, "Beta"); err != nil {
		t.Fatalf("RecordVote returned error: %v", err)
	}

	stored, _ := directory.voter(alice.Email)
	if stored.VoteChoice == nil || *stored.VoteChoice != "Beta" {
		t.Fatalf("expected repeat vote to overwrite choice, got %v", stored.VoteChoice)
	}
	if len(notifier.sentEmails()) != 1 {
		t.Fatal("expected confirmation to be re-sent on repeat vote")
	}
}

func TestVoteService_RecordVote_EmailFailureDoesNotBlockText(t *testing.T) {
	t.Parallel()

	alice := testfixtures.NewVoterFixture().Application()
	directory := newVoterDirectoryStub(alice)
	notifier := newNotifierStub()
	notifier.failEmails[alice.Email] = errors.New("relay unreachable")
	svc := NewVoteService(directory, notifier, nil, nil)

	if _, err := svc.RecordVote(context.Background(), alice.Email, "Alpha"); err != nil {
		t.Fatalf("channel failure must not fail the vote, got %v", err)
	}

	if len(notifier.sentTexts()) != 1 {
		t.Fatal("expected text send despite email failure")
	}
}

func TestVoteService_ImportVoters(t *testing.T) {
	t.Parallel()

	directory := newVoterDirectoryStub()
	svc := NewVoteService(directory, nil, nil, nil)

	inputs := []VoterInput{
		testfixtures.NewVoterFixture().Input(),
		testfixtures.NewVoterFixture(testfixtures.WithVoterEmail("bob@example.com"), testfixtures.WithVoterName("Bob", "Jones")).Input(),
		{FirstName: "No", LastName: "Email"},
	}

	count, err := svc.ImportVoters(context.Background(), inputs)
	if err != nil {
		t.Fatalf("ImportVoters returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}

	voter, ok := directory.voter("bob@example.com")
	if !ok {
		t.Fatal("expected bob@example.com to be stored")
	}
	if voter.HasVoted {
		t.Fatal("imported voters must start with HasVoted false")
	}
}
