package review

import (
	"errors"
	"fmt"

	"github.com/jonathan/spec-customizer/internal/types"
)

// ErrSuggestionNotFound is returned when a decision names an unknown suggestion id.
var ErrSuggestionNotFound = errors.New("suggestion not found")

// DecisionError represents an invalid status transition.
type DecisionError struct {
	ID   string
	From types.SuggestionStatus
	To   types.SuggestionStatus
}

func (e *DecisionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("suggestion %s: already decided", e.ID)
	}
	return fmt.Sprintf("suggestion %s: cannot move from %s to %s", e.ID, e.From, e.To)
}

// AdvisorError represents a failure to obtain or parse advisor suggestions.
type AdvisorError struct {
	Message string
	Cause   error
}

func (e *AdvisorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("advisor analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("advisor analysis failed: %s", e.Message)
}

func (e *AdvisorError) Unwrap() error {
	return e.Cause
}
