package habit

import "errors"

var (
	// ErrHabitNotFound indicates the habit id is not in the catalog.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrFutureDate indicates a backfill after today.
	ErrFutureDate = errors.New("cannot backfill a future date")
)
