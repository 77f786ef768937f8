package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Notifier sends a message to a single recipient over one of the two
// independent channels. Implementations report failures to the caller; no
// retry is performed by the core.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendText(ctx context.Context, phone, body string) error
}

// notifyVoter attempts one email and one text send for the voter. Each channel
// attempt is isolated: a failure is logged with the recipient and cause and
// does not abort the other channel or the caller's loop.
func notifyVoter(ctx context.Context, logger *slog.Logger, notifier Notifier, voter Voter, subject, emailBody, textBody string) {
	if notifier == nil {
		return
	}

	if err := notifier.SendEmail(ctx, voter.Email, subject, emailBody); err != nil {
		logger.Error("failed to send email", "recipient", voter.Email, "error", err)
	} else {
		logger.Info("email sent", "recipient", voter.Email)
	}

	if err := notifier.SendText(ctx, voter.Phone, textBody); err != nil {
		logger.Error("failed to send SMS", "recipient", voter.Phone, "error", err)
	} else {
		logger.Info("SMS sent", "recipient", voter.Phone)
	}
}

func confirmationSubject() string {
	return "Voting Confirmation"
}

func confirmationEmailBody(voter Voter, choice string) string {
	return fmt.Sprintf("Dear %s %s,\n\n"+
		"This email confirms that your vote for %s has been recorded.\n\n"+
		"Thank you for participating in the voting process.\n\n"+
		"Best regards,\nVoting System Team",
		voter.FirstName, voter.LastName, choice)
}

func confirmationTextBody(voter Voter, choice string) string {
	return fmt.Sprintf("Voting Confirmation: Dear %s, your vote for %s has been recorded. Thank you for participating.",
		voter.FirstName, choice)
}

func reminderSubject(kind ReminderKind) string {
	return fmt.Sprintf("Voting Reminder: %s", kind)
}

func reminderEmailBody(voter Voter, kind ReminderKind, votingDate time.Time) string {
	return fmt.Sprintf("Dear %s %s,\n\n"+
		"This is a %s for the upcoming voting event on %s.\n\n"+
		"Your participation is important. Please remember to cast your vote.\n\n"+
		"Voting Location: [Insert Voting Location Here]\n"+
		"Voting Time: [Insert Voting Time Here]\n\n"+
		"Don't forget to bring a valid ID.\n\n"+
		"If you have any questions, please don't hesitate to contact us.\n\n"+
		"Thank you for your participation in this important process.\n\n"+
		"Best regards,\nVoting System Team",
		voter.FirstName, voter.LastName, kind, votingDate.Format("2006-01-02"))
}

func reminderTextBody(voter Voter, kind ReminderKind, votingDate time.Time) string {
	return fmt.Sprintf("Voting %s: Dear %s, remember to vote on %s. Your participation matters!",
		kind, voter.FirstName, votingDate.Format("2006-01-02"))
}
