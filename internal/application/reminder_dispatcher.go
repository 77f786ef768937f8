package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReminderDispatcher fans a due reminder out to every voter who has not yet
// voted, one notification pair per voter.
type ReminderDispatcher struct {
	voters   VoterDirectory
	notifier Notifier
	announce func(message string)
	logger   *slog.Logger
}

// NewReminderDispatcher wires dependencies for reminder fan-out. The announce
// callback receives the summary acknowledgment after each full sweep; when nil
// the summary is only logged.
func NewReminderDispatcher(voters VoterDirectory, notifier Notifier, announce func(string), logger *slog.Logger) *ReminderDispatcher {
	return &ReminderDispatcher{
		voters:   voters,
		notifier: notifier,
		announce: announce,
		logger:   defaultLogger(logger),
	}
}

// Dispatch reads the full voter set, filters to non-voters in process, and
// sends one email and one text per recipient, continuing past individual
// channel failures. A single summary acknowledgment is emitted after the
// sweep regardless of how many sends failed.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, kind ReminderKind, votingDate time.Time) error {
	if d == nil {
		return fmt.Errorf("ReminderDispatcher is nil")
	}
	logger := serviceLogger(ctx, d.logger, "reminder", "dispatch", "kind", kind.String())

	voters, err := d.voters.ListVoters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list voters: %w", err)
	}

	for _, voter := range voters {
		if voter.HasVoted {
			continue
		}
		notifyVoter(ctx, logger, d.notifier, voter,
			reminderSubject(kind),
			reminderEmailBody(voter, kind, votingDate),
			reminderTextBody(voter, kind, votingDate),
		)
	}

	summary := fmt.Sprintf("%s sent to all non-voted voters.", kind)
	logger.Info("reminder sweep complete")
	if d.announce != nil {
		d.announce(summary)
	}
	return nil
}
