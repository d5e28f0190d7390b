package types

import "errors"

// Entry operation errors.
var (
	ErrNotFound      = errors.New("entry not found")
	ErrInvalidID     = errors.New("invalid entry ID")
	ErrInvalidDate   = errors.New("invalid entry date")
	ErrDuplicateDate = errors.New("an entry already exists for this date")
	ErrInvalidEntry  = errors.New("invalid entry data")
	ErrInvalidText   = errors.New("mood and tag labels must be valid UTF-8")
)

// Entry method errors.
var (
	ErrTooManyMoods = errors.New("too many secondary moods")
	ErrInvalidTag   = errors.New("tag must not be empty")
)
