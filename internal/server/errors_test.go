package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/ingestion"
	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/synthesis"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrNotFound{Resource: "review", ID: "x"}, http.StatusNotFound},
		{"unknown suggestion", fmt.Errorf("%w: sug-9", review.ErrSuggestionNotFound), http.StatusNotFound},
		{"unknown article", fmt.Errorf("%w: 011000-9.9", synthesis.ErrUnknownArticle), http.StatusNotFound},
		{"already decided", &review.DecisionError{ID: "sug-1"}, http.StatusConflict},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"validation", &ErrValidation{Field: "id"}, http.StatusBadRequest},
		{"ingestion", &ingestion.Error{Path: "a.pdf", Message: "unsupported"}, http.StatusBadRequest},
		{"format", &export.FormatError{Format: "rtf"}, http.StatusBadRequest},
		{"advisor configuration", &llm.ServiceError{Kind: llm.KindConfiguration}, http.StatusServiceUnavailable},
		{"advisor transient", &llm.ServiceError{Kind: llm.KindTransient}, http.StatusServiceUnavailable},
		{"advisor malformed", &review.AdvisorError{Message: "bad"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	body := errorBody(&llm.ServiceError{Kind: llm.KindTransient, Provider: llm.ProviderGemini, Message: "request failed"})
	assert.Equal(t, "transient", body["kind"])
	assert.Equal(t, "retry", body["remediation"])
	assert.Equal(t, true, body["retryable"])

	body = errorBody(&ErrValidation{Field: "id", Message: "must be a UUID"})
	assert.Equal(t, "validation error: id - must be a UUID", body["error"])
	assert.NotContains(t, body, "kind")
}

func TestErrValidation_Error(t *testing.T) {
	assert.Equal(t, "validation error: bad", (&ErrValidation{Message: "bad"}).Error())
	assert.Equal(t, "specification not found: abc", (&ErrNotFound{Resource: "specification", ID: "abc"}).Error())
}
