package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/ingestion"
	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/synthesis"
)

// ErrNotFound indicates a specification or review id is unknown.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		validation  *ErrValidation
		decision    *review.DecisionError
		advisorErr  *review.AdvisorError
		ingestErr   *ingestion.Error
		formatErr   *export.FormatError
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &notFound),
		errors.Is(err, review.ErrSuggestionNotFound),
		errors.Is(err, synthesis.ErrUnknownArticle):
		return http.StatusNotFound
	case errors.As(err, &decision):
		return http.StatusConflict
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation), errors.As(err, &ingestErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case llm.IsConfiguration(err), llm.IsTransient(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &advisorErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON error payload. Advisory service failures carry
// their kind so clients can show the right remediation.
func errorBody(err error) map[string]any {
	body := map[string]any{"error": err.Error()}
	var se *llm.ServiceError
	if errors.As(err, &se) {
		body["kind"] = string(se.Kind)
		switch se.Kind {
		case llm.KindConfiguration:
			body["remediation"] = "configure"
			body["retryable"] = false
		case llm.KindTransient:
			body["remediation"] = "retry"
			body["retryable"] = true
		default:
			body["retryable"] = false
		}
	}
	return body
}

// writeError maps err to a status and writes the JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.jsonResponse(w, status, map[string]string{"error": "internal server error"})
		logInternal(err)
		return
	}
	s.jsonResponse(w, status, errorBody(err))
}
