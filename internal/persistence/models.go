package persistence

import "time"

// Voter represents one eligible voter as stored in the backing store. The
// email address is the primary key and never changes after import.
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
