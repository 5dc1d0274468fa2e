package entities

import "time"

// Vote is the single ballot a voter IP holds. Switching projects moves
// this row rather than inserting a second one.
type Vote struct {
	VoterIP         string
	ProjectID       string
	VoteChangeCount int
	FirstVotedAt    time.Time
	LastVotedAt     time.Time
}
