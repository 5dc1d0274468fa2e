package errors

import "errors"

var (
	ErrInvalidVoterIdentity = errors.New("voter identity is required")
	ErrProjectNotVotable    = errors.New("project is not open for voting")
	ErrVoteNotFound         = errors.New("no vote recorded for voter")
)
