package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ReminderTarget is invoked synchronously for each due reminder job.
type ReminderTarget interface {
	Dispatch(ctx context.Context, kind ReminderKind, votingDate time.Time) error
}

// SchedulerOptions tunes the reminder campaign timing.
type SchedulerOptions struct {
	// Tick is the polling interval of the background clock loop.
	Tick time.Duration
	// InitialDelay is how long after scheduling the one-shot reminder fires.
	InitialDelay time.Duration
	// ThreeDayAt is the daily trigger time for the three-day reminder.
	ThreeDayAt TimeOfDay
	// VotingDayAt is the daily trigger time for the voting day reminder.
	VotingDayAt TimeOfDay
}

func (o SchedulerOptions) withDefaults() SchedulerOptions {
	if o.Tick <= 0 {
		o.Tick = time.Second
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = time.Second
	}
	if o.ThreeDayAt == (TimeOfDay{}) {
		o.ThreeDayAt = TimeOfDay{Hour: 9}
	}
	if o.VotingDayAt == (TimeOfDay{}) {
		o.VotingDayAt = TimeOfDay{Hour: 7}
	}
	return o
}

// ReminderScheduler owns the election config and the in-memory job set, and
// drives the background clock loop that fires due reminder jobs. The job set
// lives only in process memory for the lifetime of the run.
type ReminderScheduler struct {
	dispatcher  ReminderTarget
	idGenerator func() string
	now         func() time.Time
	opts        SchedulerOptions
	logger      *slog.Logger

	mu        sync.Mutex
	config    ElectionConfig
	jobs      []ReminderJob
	clockStop chan struct{}
	clockDone chan struct{}
}

// NewReminderScheduler wires dependencies for the reminder campaign.
func NewReminderScheduler(dispatcher ReminderTarget, idGenerator func() string, now func() time.Time, opts SchedulerOptions, logger *slog.Logger) *ReminderScheduler {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ReminderScheduler{
		dispatcher:  dispatcher,
		idGenerator: idGenerator,
		now:         now,
		opts:        opts.withDefaults(),
		logger:      defaultLogger(logger),
	}
}

// SetVotingDate parses and stores the voting date. The date is accepted
// whether past or future; only the calendar form is validated.
func (s *ReminderScheduler) SetVotingDate(ctx context.Context, value string) error {
	if s == nil {
		return fmt.Errorf("ReminderScheduler is nil")
	}
	logger := serviceLogger(ctx, s.logger, "reminder", "set_voting_date")

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		logger.Warn("rejected voting date", "value", value)
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	s.mu.Lock()
	s.config.VotingDate = &date
	s.mu.Unlock()

	logger.Info("voting date set", "date", date.Format("2006-01-02"))
	return nil
}

// VotingDate returns the configured voting date, or nil when unset.
func (s *ReminderScheduler) VotingDate() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.VotingDate == nil {
		return nil
	}
	date := *s.config.VotingDate
	return &date
}

// ScheduleReminders builds the three campaign jobs for the configured voting
// date and starts the clock loop if it is not already running. Calling it
// again appends another job set rather than replacing the existing one; that
// has always been the observable behavior when the date is re-set.
func (s *ReminderScheduler) ScheduleReminders(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("ReminderScheduler is nil")
	}
	logger := serviceLogger(ctx, s.logger, "reminder", "schedule_reminders")

	s.mu.Lock()
	if s.config.VotingDate == nil {
		s.mu.Unlock()
		logger.Warn("scheduling rejected", "kind", ErrorKind(ErrNoVotingDate))
		return ErrNoVotingDate
	}
	votingDate := *s.config.VotingDate
	now := s.now()
	dateTag := votingDate.Format("2006-01-02")

	s.jobs = append(s.jobs,
		ReminderJob{
			ID:      s.idGenerator(),
			Kind:    ReminderInitial,
			NextRun: now.Add(s.opts.InitialDelay),
		},
		ReminderJob{
			ID:        s.idGenerator(),
			Kind:      ReminderThreeDay,
			Tag:       "3day_" + dateTag,
			Recurring: true,
			At:        s.opts.ThreeDayAt,
			NextRun:   s.opts.ThreeDayAt.next(now),
			NotBefore: votingDate.AddDate(0, 0, -3),
		},
		ReminderJob{
			ID:        s.idGenerator(),
			Kind:      ReminderVotingDay,
			Tag:       "votingday_" + dateTag,
			Recurring: true,
			At:        s.opts.VotingDayAt,
			NextRun:   s.opts.VotingDayAt.next(now),
		},
	)

	started := false
	if s.clockStop == nil {
		s.clockStop = make(chan struct{})
		s.clockDone = make(chan struct{})
		go s.runClock(ctx, s.clockStop, s.clockDone)
		started = true
	}
	s.mu.Unlock()

	logger.Info("reminders scheduled", "voting_date", dateTag, "clock_started", started)
	return nil
}

// Jobs returns a snapshot of the active job set.
func (s *ReminderScheduler) Jobs() []ReminderJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]ReminderJob, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Stop signals the clock loop and blocks until it has exited. Stopping an
// idle scheduler is a no-op.
func (s *ReminderScheduler) Stop() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.clockStop == nil {
		s.mu.Unlock()
		return
	}
	stop, done := s.clockStop, s.clockDone
	s.clockStop = nil
	s.clockDone = nil
	s.mu.Unlock()

	close(stop)
	<-done

	s.logger.Info("reminder clock stopped", "service", "reminder")
}

// runClock evaluates the job set every tick and fires any due jobs.
func (s *ReminderScheduler) runClock(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-time.After(s.opts.Tick):
			s.FireDue(ctx)
		}
	}
}

// FireDue fires every job whose due time has arrived and applies each job's
// retirement rule: the one-shot initial reminder is removed outright, while
// the recurring jobs are advanced to their next day and then cleared by tag,
// so each reminder class fires at most once per scheduled campaign.
func (s *ReminderScheduler) FireDue(ctx context.Context) {
	s.mu.Lock()
	now := s.now()
	var due []ReminderJob
	for i := range s.jobs {
		if s.jobs[i].NextRun.After(now) {
			continue
		}
		due = append(due, s.jobs[i])
		if s.jobs[i].Recurring {
			s.jobs[i].NextRun = s.jobs[i].NextRun.AddDate(0, 0, 1)
		}
	}
	votingDate := s.config.VotingDate
	s.mu.Unlock()

	if len(due) == 0 {
		return
	}

	logger := serviceLogger(ctx, s.logger, "reminder", "fire")
	for _, job := range due {
		date := time.Time{}
		if votingDate != nil {
			date = *votingDate
		}
		if s.dispatcher != nil {
			if err := s.dispatcher.Dispatch(ctx, job.Kind, date); err != nil {
				logger.Error("reminder dispatch failed", "kind", job.Kind.String(), "error", err)
			}
		}

		if job.Recurring {
			s.clearTag(job.Tag)
		} else {
			s.removeJob(job.ID)
		}
		logger.Info("reminder job retired", "kind", job.Kind.String(), "tag", job.Tag)
	}
}

func (s *ReminderScheduler) removeJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ID != id {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
}

func (s *ReminderScheduler) clearTag(tag string) {
	if tag == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.Tag != tag {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
}
