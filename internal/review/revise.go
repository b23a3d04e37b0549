package review

import (
	"sort"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// BuildRevisedDocument applies approved suggestions to text. Every occurrence
// of a suggestion's original text on its line is replaced, with occurrences
// located in the unrevised line so one replacement never rewrites another's
// output. When occurrences of different suggestions overlap, the one declared
// first wins, matching RenderLines. Suggestions that are not approved, whose
// line is out of range, or whose original text is absent from the line are
// skipped. Lines are split and rejoined on "\n", so untouched lines are
// reproduced byte for byte.
func BuildRevisedDocument(text string, approved []types.Suggestion) string {
	if len(approved) == 0 {
		return text
	}
	lines := strings.Split(text, "\n")

	byLine := make(map[int][]placed)
	for i := range approved {
		s := &approved[i]
		if s.Status != types.StatusApproved {
			continue
		}
		if s.SuggestedText == "" && s.Type != types.SuggestionRemoval {
			continue
		}
		n := s.Line()
		if n < 1 || n > len(lines) {
			continue
		}
		for _, span := range occurrences(lines[n-1], n, s.Original()) {
			if overlapsAny(byLine[n], span) {
				continue
			}
			byLine[n] = append(byLine[n], placed{span: span, suggestion: s})
		}
	}

	for n, spans := range byLine {
		lines[n-1] = replaceSpans(lines[n-1], spans)
	}
	return strings.Join(lines, "\n")
}

// occurrences returns the non-overlapping spans of original in line.
func occurrences(line string, number int, original string) []types.Span {
	if original == "" {
		return nil
	}
	var spans []types.Span
	for pos := 0; pos <= len(line); {
		idx := strings.Index(line[pos:], original)
		if idx < 0 {
			break
		}
		start := pos + idx
		spans = append(spans, types.Span{Line: number, Start: start, End: start + len(original)})
		pos = start + len(original)
	}
	return spans
}

func replaceSpans(line string, spans []placed) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i].span.Start < spans[j].span.Start })

	var b strings.Builder
	pos := 0
	for _, p := range spans {
		b.WriteString(line[pos:p.span.Start])
		b.WriteString(p.suggestion.SuggestedText)
		pos = p.span.End
	}
	b.WriteString(line[pos:])
	return b.String()
}
