package review

import (
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// Locate resolves where a suggestion's original text sits in the document.
// A frozen anchor is used when it still matches; otherwise the first
// occurrence on the suggestion's line is used.
func Locate(doc *Document, s *types.Suggestion) (types.Span, bool) {
	original := s.Original()
	if original == "" {
		return types.Span{}, false
	}
	line, ok := doc.Line(s.Line())
	if !ok {
		return types.Span{}, false
	}
	if a := s.Anchor; a != nil && a.Line == s.Line() && a.Start >= 0 && a.End <= len(line) && a.Start <= a.End {
		if line[a.Start:a.End] == original {
			return *a, true
		}
	}
	idx := strings.Index(line, original)
	if idx < 0 {
		return types.Span{}, false
	}
	return types.Span{Line: s.Line(), Start: idx, End: idx + len(original)}, true
}

// Applicable reports whether a suggestion can be highlighted and applied.
// Suggestions without a replacement are malformed unless they are removals.
func Applicable(doc *Document, s *types.Suggestion) bool {
	if s.SuggestedText == "" && s.Type != types.SuggestionRemoval {
		return false
	}
	_, ok := Locate(doc, s)
	return ok
}

// markRenderable refreshes anchors and the renderable flag against doc.
func markRenderable(doc *Document, suggestions []types.Suggestion) {
	for i := range suggestions {
		s := &suggestions[i]
		span, ok := Locate(doc, s)
		if ok {
			s.Anchor = &span
		}
		s.Renderable = ok && Applicable(doc, s)
	}
}

func cloneSuggestion(s types.Suggestion) types.Suggestion {
	out := s
	if s.LineNumber != nil {
		n := *s.LineNumber
		out.LineNumber = &n
	}
	if s.OriginalText != nil {
		t := *s.OriginalText
		out.OriginalText = &t
	}
	if s.Anchor != nil {
		a := *s.Anchor
		out.Anchor = &a
	}
	return out
}

func cloneSuggestions(in []types.Suggestion) []types.Suggestion {
	if in == nil {
		return nil
	}
	out := make([]types.Suggestion, len(in))
	for i, s := range in {
		out[i] = cloneSuggestion(s)
	}
	return out
}
