package services

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotPending         = errors.New("submission is not pending")
	ErrAlreadyProcessed   = errors.New("submission not found or already processed")
	ErrCorruptSubmission  = errors.New("proposed data is not valid JSON")
	ErrInvalidSubmission  = errors.New("submission is missing section, organization, or submitter")
	ErrUnsupportedSection = errors.New("unsupported submission section")
)

// ValidationError reports a missing, blank, or malformed required
// field in a section payload. It aborts the whole apply before any
// writes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("%s %s", e.Field, reason)
}

// IsValidationError reports whether err is a payload validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
