package application

import "errors"

var (
	// ErrVoterNotFound is returned when the referenced voter does not exist.
	ErrVoterNotFound = errors.New("application: voter not found")
	// ErrInvalidDate is returned when a voting date fails to parse.
	ErrInvalidDate = errors.New("application: invalid voting date")
	// ErrNoVotingDate is returned when reminders are scheduled before a voting date is set.
	ErrNoVotingDate = errors.New("application: voting date not set")
	// ErrAlreadyRunning is returned when the live tally monitor is started twice.
	ErrAlreadyRunning = errors.New("application: live tally already running")
	// ErrNotRunning is returned when the live tally monitor is stopped while idle.
	ErrNotRunning = errors.New("application: live tally not running")
	// ErrInvalidCredentials is returned when the admin passphrase does not match.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
)
