package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownRole       = errors.New("unknown role code")
	ErrUnauthorized      = errors.New("caller is not authorized for this action")
	ErrInvalidState      = errors.New("operation not allowed in the current lifecycle state")
	ErrInvalidTransition = errors.New("transition not allowed from the current status")
	ErrNoActiveEntry     = errors.New("no open time entry for this assignment")
	ErrNoRecordedWork    = errors.New("shift has no closed time entries")
)

// FieldError is one malformed field in a request or import record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every malformed field in a batch so callers can
// fix the whole input in one pass instead of resubmitting per error.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (ve *ValidationErrors) Add(field, format string, args ...any) {
	*ve = append(*ve, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}
