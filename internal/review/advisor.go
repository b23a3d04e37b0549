package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/schemas"
	"github.com/jonathan/spec-customizer/internal/types"
	embedded "github.com/jonathan/spec-customizer/schemas"
)

// AdvisorAnalyzer asks the advisory service for additional suggestions.
type AdvisorAnalyzer struct {
	advisor *llm.Advisor
	tier    llm.ModelTier
}

// NewAdvisorAnalyzer wraps an advisor. Structured output uses the standard tier.
func NewAdvisorAnalyzer(advisor *llm.Advisor) *AdvisorAnalyzer {
	return &AdvisorAnalyzer{advisor: advisor, tier: llm.TierStandard}
}

type advisorSuggestion struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	Priority      string  `json:"priority"`
	Category      string  `json:"category"`
	LineNumber    *int    `json:"lineNumber"`
	OriginalText  *string `json:"originalText"`
	SuggestedText string  `json:"suggestedText"`
}

type advisorResponse struct {
	Suggestions []advisorSuggestion `json:"suggestions"`
}

// Suggest returns advisor suggestions for doc with ids ai-001, ai-002, ...
// Suggestions whose anchor cannot be located are kept but not renderable.
// Service failures are returned as *llm.ServiceError; malformed output as
// *AdvisorError.
func (a *AdvisorAnalyzer) Suggest(ctx context.Context, doc *Document) ([]types.Suggestion, error) {
	if doc.Empty() {
		return []types.Suggestion{}, nil
	}

	raw, err := a.advisor.RespondJSON(ctx, llm.BuildExtractionPrompt(llm.SuggestionListSchema(), numberedText(doc)), a.tier)
	if err != nil {
		return nil, err
	}
	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(embedded.AdvisorSuggestions, []byte(raw)); err != nil {
		return nil, &AdvisorError{Message: "response does not match suggestion schema", Cause: err}
	}

	var resp advisorResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &AdvisorError{Message: "failed to parse response", Cause: err}
	}

	out := make([]types.Suggestion, 0, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		out = append(out, types.Suggestion{
			ID:            fmt.Sprintf("ai-%03d", i+1),
			Title:         s.Title,
			Description:   s.Description,
			Type:          types.SuggestionType(strings.ToLower(s.Type)),
			Priority:      types.Priority(strings.ToLower(s.Priority)),
			Category:      s.Category,
			LineNumber:    s.LineNumber,
			OriginalText:  s.OriginalText,
			SuggestedText: s.SuggestedText,
			Status:        types.StatusPending,
		})
	}
	markRenderable(doc, out)
	return out, nil
}

// Merge appends extra suggestions after base, renaming ids that collide.
func Merge(base, extra []types.Suggestion) []types.Suggestion {
	out := cloneSuggestions(base)
	if out == nil {
		out = []types.Suggestion{}
	}
	seen := make(map[string]bool, len(base)+len(extra))
	for _, s := range out {
		seen[s.ID] = true
	}
	for _, s := range extra {
		s = cloneSuggestion(s)
		id := s.ID
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s-%d", s.ID, n)
		}
		s.ID = id
		seen[id] = true
		out = append(out, s)
	}
	return out
}

func numberedText(doc *Document) string {
	var sb strings.Builder
	for i, line := range doc.lines {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, line)
	}
	return sb.String()
}
