// Package console implements the interactive administrator shell for the
// election process.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/example/voting-console/internal/application"
)

// UsageError reports malformed command input. No side effect is performed.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// VoteAPI exposes the vote operations consumed by the console.
type VoteAPI interface {
	RecordVote(ctx context.Context, email, choice string) (application.Voter, error)
	GetVoterStatus(ctx context.Context, email string) (application.Voter, error)
	ListVoters(ctx context.Context) ([]application.Voter, error)
	ImportVoters(ctx context.Context, inputs []application.VoterInput) (int, error)
}

// SchedulerAPI exposes the reminder campaign operations consumed by the console.
type SchedulerAPI interface {
	SetVotingDate(ctx context.Context, value string) error
	ScheduleReminders(ctx context.Context) error
	VotingDate() *time.Time
}

// TallyAPI exposes the live tally operations consumed by the console.
type TallyAPI interface {
	Start(ctx context.Context) error
	Stop() error
}

// VoterLoader parses a registration file into voter inputs.
type VoterLoader func(path string) ([]application.VoterInput, error)

// Deps collects the collaborators the console drives.
type Deps struct {
	Votes     VoteAPI
	Scheduler SchedulerAPI
	Tally     TallyAPI
	Load      VoterLoader
	// AdminPasswordHash, when non-empty, requires a passphrase before the
	// command loop starts.
	AdminPasswordHash string
	Logger            *slog.Logger
}

// Console reads administrator commands and drives the election services.
type Console struct {
	deps Deps
	in   *bufio.Scanner
	out  io.Writer
}

// New constructs a console reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, deps Deps) *Console {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Console{
		deps: deps,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run executes the command loop until the exit command, end of input, or
// context cancellation. On exit the live tally is stopped and joined.
func (c *Console) Run(ctx context.Context) error {
	if c.deps.AdminPasswordHash != "" {
		if err := c.authenticate(); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, "Welcome to the Enhanced Voting System. Type 'help' for commands.")

	for {
		fmt.Fprint(c.out, "(voting) ")
		if !c.in.Scan() {
			c.shutdown()
			return c.in.Err()
		}
		if ctx.Err() != nil {
			c.shutdown()
			return ctx.Err()
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]

		if command == "exit" {
			fmt.Fprintln(c.out, "Thank you for using the Enhanced Voting System.")
			c.shutdown()
			return nil
		}

		if err := c.dispatch(ctx, command, args); err != nil {
			fmt.Fprintln(c.out, errorMessage(err))
		}
	}
}

func (c *Console) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		c.printHelp()
		return nil
	case "import_voters":
		return c.importVoters(ctx, args)
	case "record_vote":
		return c.recordVote(ctx, args)
	case "get_voter_status":
		return c.getVoterStatus(ctx, args)
	case "set_voting_date":
		return c.setVotingDate(ctx, args)
	case "live_voting":
		return c.liveVoting(ctx)
	case "stop_live_voting":
		return c.stopLiveVoting()
	case "list_voters":
		return c.listVoters(ctx)
	default:
		return fmt.Errorf("unknown command %q, type 'help' for commands", command)
	}
}

func (c *Console) importVoters(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &UsageError{Usage: "import_voters <file_path>"}
	}
	if c.deps.Load == nil {
		return fmt.Errorf("import is not configured")
	}
	inputs, err := c.deps.Load(args[0])
	if err != nil {
		return err
	}
	count, err := c.deps.Votes.ImportVoters(ctx, inputs)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Successfully imported %d voters.\n", count)
	return nil
}

func (c *Console) recordVote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return &UsageError{Usage: "record_vote <email> <choice>"}
	}
	email, choice := args[0], args[1]
	if _, err := c.deps.Votes.RecordVote(ctx, email, choice); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vote recorded for %s: %s\n", email, choice)
	return nil
}

func (c *Console) getVoterStatus(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &UsageError{Usage: "get_voter_status <email>"}
	}
	voter, err := c.deps.Votes.GetVoterStatus(ctx, args[0])
	if err != nil {
		return err
	}

	choice := "N/A"
	if voter.VoteChoice != nil {
		choice = *voter.VoteChoice
	}
	fmt.Fprintln(c.out, "Voter Information:")
	fmt.Fprintf(c.out, "Name: %s %s\n", voter.FirstName, voter.LastName)
	fmt.Fprintf(c.out, "Email: %s\n", voter.Email)
	fmt.Fprintf(c.out, "Address: %s %s, %s, %s\n", voter.StreetNumber, voter.StreetName, voter.City, voter.PostalCode)
	fmt.Fprintf(c.out, "Phone: %s\n", voter.Phone)
	fmt.Fprintf(c.out, "Has voted: %t\n", voter.HasVoted)
	fmt.Fprintf(c.out, "Vote choice: %s\n", choice)
	return nil
}

func (c *Console) setVotingDate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &UsageError{Usage: "set_voting_date <YYYY-MM-DD>"}
	}
	if err := c.deps.Scheduler.SetVotingDate(ctx, args[0]); err != nil {
		return err
	}
	if err := c.deps.Scheduler.ScheduleReminders(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Voting date set to %s. Reminders scheduled.\n", args[0])
	return nil
}

func (c *Console) liveVoting(ctx context.Context) error {
	if err := c.deps.Tally.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Live voting updates started.")
	return nil
}

func (c *Console) stopLiveVoting() error {
	if err := c.deps.Tally.Stop(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\nLive voting updates stopped.")
	return nil
}

func (c *Console) listVoters(ctx context.Context) error {
	voters, err := c.deps.Votes.ListVoters(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Voter List:")
	for _, voter := range voters {
		status := "No"
		if voter.HasVoted {
			status = "Yes"
		}
		fmt.Fprintf(c.out, "%s %s - %s, Voted: %s\n", voter.FirstName, voter.LastName, voter.Email, status)
	}
	return nil
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  import_voters <file_path>     Import voters from a CSV file")
	fmt.Fprintln(c.out, "  record_vote <email> <choice>  Record a vote")
	fmt.Fprintln(c.out, "  get_voter_status <email>      Show a voter record")
	fmt.Fprintln(c.out, "  set_voting_date <YYYY-MM-DD>  Set the voting date and schedule reminders")
	fmt.Fprintln(c.out, "  live_voting                   Start live vote count updates")
	fmt.Fprintln(c.out, "  stop_live_voting              Stop live vote count updates")
	fmt.Fprintln(c.out, "  list_voters                   List all voters")
	fmt.Fprintln(c.out, "  exit                          Leave the console")
}

// authenticate prompts for the admin passphrase, allowing three attempts.
func (c *Console) authenticate() error {
	for attempt := 0; attempt < 3; attempt++ {
		fmt.Fprint(c.out, "Password: ")
		if !c.in.Scan() {
			return fmt.Errorf("authentication aborted")
		}
		err := application.VerifyPassword(c.deps.AdminPasswordHash, c.in.Text())
		if err == nil {
			return nil
		}
		if !errors.Is(err, application.ErrInvalidCredentials) {
			return err
		}
		fmt.Fprintln(c.out, "Invalid password.")
	}
	return application.ErrInvalidCredentials
}

// shutdown stops the live tally before the process leaves the command loop.
// A monitor that was never started is not an error here.
func (c *Console) shutdown() {
	if err := c.deps.Tally.Stop(); err != nil && !errors.Is(err, application.ErrNotRunning) {
		c.deps.Logger.Error("failed to stop live tally", "error", err)
	}
}

// errorMessage renders service errors in administrator-facing form.
func errorMessage(err error) string {
	var usage *UsageError
	if errors.As(err, &usage) {
		return usage.Error()
	}
	switch {
	case errors.Is(err, application.ErrVoterNotFound):
		return "Voter not found."
	case errors.Is(err, application.ErrInvalidDate):
		return "Invalid date format. Please use YYYY-MM-DD."
	case errors.Is(err, application.ErrNoVotingDate):
		return "Voting date not set. Use set_voting_date command first."
	case errors.Is(err, application.ErrAlreadyRunning):
		return "Live voting is already running."
	case errors.Is(err, application.ErrNotRunning):
		return "Live voting is not currently running."
	}
	return "Error: " + err.Error()
}
