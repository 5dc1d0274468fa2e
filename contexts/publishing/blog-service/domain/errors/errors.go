package errors

import "errors"

var (
	ErrPostNotFound     = errors.New("blog post not found")
	ErrInvalidPostInput = errors.New("invalid blog post input")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrForbidden        = errors.New("actor role not permitted")
)
