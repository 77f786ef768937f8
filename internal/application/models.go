package application

import "time"

// Voter represents one eligible voter exposed by the application services.
type Voter struct {
	Email        string
	FirstName    string
	LastName     string
	StreetNumber string
	StreetName   string
	City         string
	PostalCode   string
	Phone        string
	HasVoted     bool
	VoteChoice   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VoterInput captures caller provided voter fields for import.
type VoterInput struct {
	Email        string
	FirstName    string
	LastName     string
	StreetNumber string
	StreetName   string
	City         string
	PostalCode   string
	Phone        string
}

// ReminderKind identifies one step of the reminder campaign.
type ReminderKind int

const (
	// ReminderInitial is the one-shot reminder fired shortly after scheduling.
	ReminderInitial ReminderKind = iota
	// ReminderThreeDay is the daily trigger representing "three days before".
	ReminderThreeDay
	// ReminderVotingDay is the daily trigger for the voting day itself.
	ReminderVotingDay
)

// String returns the campaign label used in notification bodies and logs.
func (k ReminderKind) String() string {
	switch k {
	case ReminderInitial:
		return "Initial reminder"
	case ReminderThreeDay:
		return "3-day reminder"
	case ReminderVotingDay:
		return "Voting day reminder"
	}
	return "unknown reminder"
}

// TimeOfDay is a wall-clock trigger time for daily recurring jobs.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// next returns the first instant at or after reference matching the time of day.
func (t TimeOfDay) next(reference time.Time) time.Time {
	candidate := time.Date(reference.Year(), reference.Month(), reference.Day(), t.Hour, t.Minute, 0, 0, reference.Location())
	if candidate.Before(reference) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// ReminderJob is one scheduled, time-triggered unit of the reminder campaign.
type ReminderJob struct {
	ID        string
	Kind      ReminderKind
	Tag       string
	Recurring bool
	NextRun   time.Time
	At        TimeOfDay
	// NotBefore holds the computed "three days before" instant for the
	// three-day job. The due check does not consult it; the trigger fires on
	// its next matching time of day regardless of how many days remain. This
	// mirrors the behavior the campaign has always had.
	NotBefore time.Time
}

// ElectionConfig holds the process-wide election state owned by the scheduler.
type ElectionConfig struct {
	VotingDate *time.Time
}
