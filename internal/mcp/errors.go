package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
)

// errInvalidArguments marks tool arguments that are well-typed but unusable.
var errInvalidArguments = errors.New("invalid arguments")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return &APIError{Code: "HABIT_NOT_FOUND", Message: "habit not found", RecoveryHint: "Call list_habits for valid ids"}
	case errors.Is(err, habit.ErrFutureDate):
		return &APIError{Code: "FUTURE_DATE", Message: "cannot log a future date", RecoveryHint: "Use today or an earlier date"}
	case errors.Is(err, habit.ErrInvalidDate), errors.Is(err, journal.ErrInvalidDate), errors.Is(err, calendar.ErrInvalidDate):
		return &APIError{Code: "INVALID_DATE", Message: "invalid date", Details: err.Error(), RecoveryHint: "Use YYYY-MM-DD"}
	case errors.Is(err, journal.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "journal entry not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, journal.ErrDuplicateDate):
		return &APIError{Code: "DUPLICATE_DATE", Message: "another entry already exists for that date", RecoveryHint: "Update that entry instead"}
	case errors.Is(err, journal.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, errInvalidArguments):
		return &APIError{Code: "INVALID_ARGUMENTS", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts err into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
