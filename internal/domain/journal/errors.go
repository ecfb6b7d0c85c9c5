package journal

import "errors"

var (
	// ErrEntryNotFound indicates no entry has the given id.
	ErrEntryNotFound = errors.New("journal entry not found")
	// ErrDuplicateDate indicates another entry already holds the date.
	ErrDuplicateDate = errors.New("journal entry already exists for date")
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidInput indicates invalid entry input.
	ErrInvalidInput = errors.New("invalid journal entry input")
)
