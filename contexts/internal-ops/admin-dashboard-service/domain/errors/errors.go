package errors

import "errors"

var (
	ErrForbidden = errors.New("actor role not permitted")
)
