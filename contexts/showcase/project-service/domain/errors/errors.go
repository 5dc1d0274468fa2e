package errors

import "errors"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProjectInput = errors.New("invalid project input")
	ErrInvalidStatus       = errors.New("unknown approval status")
	ErrReasonRequired      = errors.New("rejection reason is required")
	ErrAlreadyRejected     = errors.New("project is already rejected")
	ErrNotApproved         = errors.New("only approved projects can be featured")
	ErrUnknownActor        = errors.New("actor is not a known user")
	ErrForbidden           = errors.New("actor role is not allowed to perform this action")
)
