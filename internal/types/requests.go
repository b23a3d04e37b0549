// Package types provides type definitions for structured data used throughout the spec-customizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// SynthesizeRequest is the body of a synthesis request.
type SynthesizeRequest struct {
	CharterSource string  `json:"charterSource" validate:"max=200"`
	Charter       Charter `json:"charter"`
}

// ArticleEditRequest overrides the displayed text of a generated article.
type ArticleEditRequest struct {
	Content string `json:"content" validate:"required"`
}

// AnalyzeRequest carries a document for review. Text is kept raw so that a
// non-string value can be treated as an empty document instead of a decode
// failure; review.DocumentFromJSON does that conversion.
type AnalyzeRequest struct {
	FileName string          `json:"fileName" validate:"required,max=255"`
	Text     json.RawMessage `json:"text"`
}

// AdvisorRequest is a conversational prompt for the advisory text service.
type AdvisorRequest struct {
	Prompt  string   `json:"prompt" validate:"required,min=1,max=4000"`
	Context string   `json:"context,omitempty" validate:"max=20000"`
	Charter *Charter `json:"charter,omitempty"`
}

// Validate validates the SynthesizeRequest using the validator.
func (r *SynthesizeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ArticleEditRequest using the validator.
func (r *ArticleEditRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AdvisorRequest using the validator.
func (r *AdvisorRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
