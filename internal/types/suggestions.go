// Package types provides type definitions for structured data used throughout the spec-customizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SuggestionType classifies a suggestion. Kept as an open string type so new
// categories can be introduced without changing the model.
type SuggestionType string

// Known suggestion types
const (
	SuggestionCompliance SuggestionType = "compliance"
	SuggestionUpdate     SuggestionType = "update"
	SuggestionAddition   SuggestionType = "addition"
	SuggestionRemoval    SuggestionType = "removal"
)

// Priority ranks a suggestion.
type Priority string

// Known priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SuggestionStatus is the life-cycle state of a suggestion.
type SuggestionStatus string

// Suggestion states
const (
	StatusPending  SuggestionStatus = "pending"
	StatusApproved SuggestionStatus = "approved"
	StatusRejected SuggestionStatus = "rejected"
)

// Span is a frozen anchor inside a document: 1-indexed line and byte offsets
// [Start, End) within that line.
type Span struct {
	Line  int `json:"line"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Suggestion is a discrete, independently decidable proposed text change.
type Suggestion struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Type          SuggestionType   `json:"type"`
	Priority      Priority         `json:"priority"`
	Category      string           `json:"category"`
	LineNumber    *int             `json:"lineNumber,omitempty"`
	OriginalText  *string          `json:"originalText,omitempty"`
	SuggestedText string           `json:"suggestedText"`
	Status        SuggestionStatus `json:"status"`
	Anchor        *Span            `json:"anchor,omitempty"`
	Renderable    bool             `json:"renderable"`
}

// Line returns the anchored line number, or 0 when unset.
func (s *Suggestion) Line() int {
	if s.LineNumber == nil {
		return 0
	}
	return *s.LineNumber
}

// Original returns the original text, or "" when unset.
func (s *Suggestion) Original() string {
	if s.OriginalText == nil {
		return ""
	}
	return *s.OriginalText
}

// Decided reports whether the suggestion has left the pending state.
func (s *Suggestion) Decided() bool {
	return s.Status == StatusApproved || s.Status == StatusRejected
}

// Suggestions is a collection of suggestions (wrapper for schema)
type Suggestions struct {
	FileName    string       `json:"fileName"`
	Suggestions []Suggestion `json:"suggestions"`
}
