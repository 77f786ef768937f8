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

func votingDay(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestReminderDispatcher_SkipsVotedVoters(t *testing.T) {
	t.Parallel()

	voted := testfixtures.NewVoterFixture(testfixtures.WithVoted("Alpha")).Application()
	pending := testfixtures.NewVoterFixture(
		testfixtures.WithVoterEmail("bob@example.com"),
		testfixtures.WithVoterName("Bob", "Jones"),
		testfixtures.WithVoterPhone("+15550101"),
	).Application()

	directory := newVoterDirectoryStub(voted, pending)
	notifier := newNotifierStub()
	dispatcher := NewReminderDispatcher(directory, notifier, nil, nil)

	if err := dispatcher.Dispatch(context.Background(), ReminderThreeDay, votingDay(t)); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	emails := notifier.sentEmails()
	texts := notifier.sentTexts()
	if len(emails) != 1 || emails[0].Recipient != pending.Email {
		t.Fatalf("expected exactly one email to %s, got %v", pending.Email, emails)
	}
	if len(texts) != 1 || texts[0].Recipient != pending.Phone {
		t.Fatalf("expected exactly one text to %s, got %v", pending.Phone, texts)
	}
	if emails[0].Subject != "Voting Reminder: 3-day reminder" {
		t.Fatalf("unexpected subject %q", emails[0].Subject)
	}
	if !strings.Contains(emails[0].Body, "2025-06-01") {
		t.Fatalf("reminder body must carry the voting date, got %q", emails[0].Body)
	}
}

func TestReminderDispatcher_ChannelFailureIsIsolated(t *testing.T) {
	t.Parallel()

	first := testfixtures.NewVoterFixture().Application()
	second := testfixtures.NewVoterFixture(
		testfixtures.WithVoterEmail("bob@example.com"),
		testfixtures.WithVoterPhone("+15550101"),
	).Application()

	directory := newVoterDirectoryStub(first, second)
	notifier := newNotifierStub()
	notifier.failEmails[first.Email] = errors.New("malformed address")

	var announced []string
	dispatcher := NewReminderDispatcher(directory, notifier, func(message string) {
		announced = append(announced, message)
	}, nil)

	if err := dispatcher.Dispatch(context.Background(), ReminderVotingDay, votingDay(t)); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	// The failing email must not block the same voter's text nor the second
	// voter's sends.
	if len(notifier.sentTexts()) != 2 {
		t.Fatalf("expected 2 texts, got %v", notifier.sentTexts())
	}
	emails := notifier.sentEmails()
	if len(emails) != 1 || emails[0].Recipient != second.Email {
		t.Fatalf("expected one email to the second voter, got %v", emails)
	}

	// The summary is a blanket acknowledgment regardless of failures.
	if len(announced) != 1 || announced[0] != "Voting day reminder sent to all non-voted voters." {
		t.Fatalf("unexpected summary %v", announced)
	}
}

func TestReminderDispatcher_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	directory := newVoterDirectoryStub()
	directory.listErr = errors.New("store unavailable")
	dispatcher := NewReminderDispatcher(directory, newNotifierStub(), nil, nil)

	if err := dispatcher.Dispatch(context.Background(), ReminderInitial, votingDay(t)); err == nil {
		t.Fatal("expected error when the voter sweep cannot start")
	}
}
