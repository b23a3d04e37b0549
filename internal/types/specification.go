// Package types provides type definitions for structured data used throughout the spec-customizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SectionTemplate is an immutable library entry keyed by its MasterFormat section number.
type SectionTemplate struct {
	Number string         `json:"number" yaml:"number"`
	Title  string         `json:"title" yaml:"title"`
	Parts  []PartTemplate `json:"parts" yaml:"parts"`
}

// PartTemplate is an ordered group of articles within a section (PART 1 GENERAL, ...).
type PartTemplate struct {
	Number   string            `json:"number" yaml:"number"`
	Title    string            `json:"title" yaml:"title"`
	Articles []ArticleTemplate `json:"articles" yaml:"articles"`
}

// ArticleTemplate holds template text with zero or more [PLACEHOLDER] tokens.
type ArticleTemplate struct {
	Number          string   `json:"number" yaml:"number"`
	Title           string   `json:"title" yaml:"title"`
	Content         string   `json:"content" yaml:"content"`
	SuggestedValues []string `json:"suggestedValues,omitempty" yaml:"suggestedValues,omitempty"`
}

// Provenance records where a piece of generated text came from.
type Provenance string

// Provenance values
const (
	ProvenanceTemplate Provenance = "template"
	ProvenanceCharter  Provenance = "charter"
	ProvenanceUser     Provenance = "user"
)

// GeneratedArticle is an article after placeholder substitution.
type GeneratedArticle struct {
	Number          string     `json:"number"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Provenance      Provenance `json:"provenance"`
	CharterField    string     `json:"charterField,omitempty"`
	CharterFields   []string   `json:"charterFields,omitempty"`
	SuggestedValues []string   `json:"suggestedValues,omitempty"`
}

// GeneratedPart is a part of a generated section.
type GeneratedPart struct {
	Number   string             `json:"number"`
	Title    string             `json:"title"`
	Articles []GeneratedArticle `json:"articles"`
}

// GeneratedSection is a fully populated specification section.
type GeneratedSection struct {
	Number string          `json:"number"`
	Title  string          `json:"title"`
	Parts  []GeneratedPart `json:"parts"`
}

// TipKind classifies an advisory tip.
type TipKind string

// Tip kinds
const (
	TipSuggestion TipKind = "suggestion"
	TipWarning    TipKind = "warning"
	TipMissing    TipKind = "missing"
)

// AITip is an advisory record emitted during synthesis.
type AITip struct {
	ID            string  `json:"id"`
	SectionNumber string  `json:"sectionNumber"`
	Kind          TipKind `json:"kind"`
	Message       string  `json:"message"`
	Action        string  `json:"action,omitempty"`
}

// SpecificationMetadata summarizes a synthesis run.
type SpecificationMetadata struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	CharterSource string    `json:"charterSource"`
	Completeness  int       `json:"completeness"`
	MissingFields []string  `json:"missingFields"`
}

// GeneratedSpecification is the output of synthesis.
type GeneratedSpecification struct {
	Sections []GeneratedSection    `json:"sections"`
	Tips     []AITip               `json:"tips"`
	Metadata SpecificationMetadata `json:"metadata"`
}

// FindArticle returns a pointer to the article identified by section and article number.
func (s *GeneratedSpecification) FindArticle(sectionNumber, articleNumber string) *GeneratedArticle {
	if s == nil {
		return nil
	}
	for i := range s.Sections {
		section := &s.Sections[i]
		if section.Number != sectionNumber {
			continue
		}
		for j := range section.Parts {
			part := &section.Parts[j]
			for k := range part.Articles {
				if part.Articles[k].Number == articleNumber {
					return &part.Articles[k]
				}
			}
		}
	}
	return nil
}

// TipsForSection returns the tips owned by a section, in emission order.
func (s *GeneratedSpecification) TipsForSection(sectionNumber string) []AITip {
	var tips []AITip
	for _, tip := range s.Tips {
		if tip.SectionNumber == sectionNumber {
			tips = append(tips, tip)
		}
	}
	return tips
}

// Clone returns a deep copy of the specification.
func (s *GeneratedSpecification) Clone() *GeneratedSpecification {
	if s == nil {
		return nil
	}
	out := &GeneratedSpecification{
		Sections: make([]GeneratedSection, len(s.Sections)),
		Tips:     append([]AITip{}, s.Tips...),
		Metadata: s.Metadata,
	}
	out.Metadata.MissingFields = append([]string{}, s.Metadata.MissingFields...)

	for i, section := range s.Sections {
		sectionCopy := GeneratedSection{
			Number: section.Number,
			Title:  section.Title,
			Parts:  make([]GeneratedPart, len(section.Parts)),
		}
		for j, part := range section.Parts {
			partCopy := GeneratedPart{
				Number:   part.Number,
				Title:    part.Title,
				Articles: make([]GeneratedArticle, len(part.Articles)),
			}
			for k, article := range part.Articles {
				article.CharterFields = append([]string(nil), article.CharterFields...)
				article.SuggestedValues = append([]string(nil), article.SuggestedValues...)
				partCopy.Articles[k] = article
			}
			sectionCopy.Parts[j] = partCopy
		}
		out.Sections[i] = sectionCopy
	}
	return out
}
