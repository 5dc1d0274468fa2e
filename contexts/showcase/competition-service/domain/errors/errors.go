package errors

import "errors"

var (
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrInvalidCompetitionInput = errors.New("invalid competition input")
	ErrInvalidStatus           = errors.New("unknown approval status")
	ErrReasonRequired          = errors.New("rejection reason is required")
	ErrUnknownActor            = errors.New("actor is not a known user")
	ErrForbidden               = errors.New("actor role is not allowed to perform this action")
)
