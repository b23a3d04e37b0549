// Package templates provides the fixed Division 01 section-template library.
package templates

import "fmt"

// LoadError represents an error parsing or validating a template library
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template library error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template library error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
