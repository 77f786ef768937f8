package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TallySink receives each published vote count.
type TallySink func(count int)

// TallyMonitor republishes the count of voters who have voted at a fixed
// cadence. At most one background poll loop is alive at a time.
type TallyMonitor struct {
	voters   VoterDirectory
	sink     TallySink
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewTallyMonitor wires dependencies for the live tally loop.
func NewTallyMonitor(voters VoterDirectory, sink TallySink, interval time.Duration, logger *slog.Logger) *TallyMonitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &TallyMonitor{
		voters:   voters,
		sink:     sink,
		interval: interval,
		logger:   defaultLogger(logger),
	}
}

// Start launches the background poll loop. It fails with ErrAlreadyRunning
// when a loop is currently alive.
func (m *TallyMonitor) Start(ctx context.Context) error {
	if m == nil {
		return fmt.Errorf("TallyMonitor is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stop != nil {
		return ErrAlreadyRunning
	}

	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(ctx, m.stop, m.done)

	serviceLogger(ctx, m.logger, "tally", "start").Info("live tally started", "interval", m.interval)
	return nil
}

// Stop signals the poll loop and blocks until it has exited. It fails with
// ErrNotRunning when no loop is alive.
func (m *TallyMonitor) Stop() error {
	if m == nil {
		return fmt.Errorf("TallyMonitor is nil")
	}

	m.mu.Lock()
	if m.stop == nil {
		m.mu.Unlock()
		return ErrNotRunning
	}
	stop, done := m.stop, m.done
	m.stop = nil
	m.done = nil
	m.mu.Unlock()

	close(stop)
	<-done

	m.logger.Info("live tally stopped", "service", "tally")
	return nil
}

// run polls the store until the stop signal or context cancellation is
// observed. A failing store read is a logged skip, not a termination.
func (m *TallyMonitor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	logger := serviceLogger(ctx, m.logger, "tally", "poll")
	for {
		count, err := m.voters.CountVoters(ctx, true)
		if err != nil {
			logger.Warn("tally read failed, skipping tick", "error", err)
		} else if m.sink != nil {
			m.sink(count)
		}

		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-time.After(m.interval):
		}
	}
}
