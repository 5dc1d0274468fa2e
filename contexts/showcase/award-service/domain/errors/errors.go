package errors

import "errors"

var (
	ErrAwardNotFound      = errors.New("award not found")
	ErrInvalidAwardInput  = errors.New("invalid award input")
	ErrInvalidStatus      = errors.New("invalid approval status")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrUnknownActor       = errors.New("unknown moderation actor")
	ErrUnknownProject     = errors.New("referenced project does not exist")
	ErrUnknownCompetition = errors.New("referenced competition does not exist")
	ErrForbidden          = errors.New("actor role not permitted")
)
