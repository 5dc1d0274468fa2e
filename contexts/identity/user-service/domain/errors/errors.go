package errors

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUserInput = errors.New("invalid user input")
	ErrInvalidRole      = errors.New("invalid role")
	ErrDuplicateUser    = errors.New("username or email already taken")
	ErrForbidden        = errors.New("actor role not permitted")
	ErrSelfDeletion     = errors.New("actors cannot delete themselves")
)
