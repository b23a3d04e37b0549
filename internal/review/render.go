package review

import (
	"sort"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// SegmentKind describes how a span of a rendered line is displayed.
type SegmentKind string

// Segment kinds
const (
	SegmentPlain    SegmentKind = "plain"
	SegmentPending  SegmentKind = "pending"
	SegmentApproved SegmentKind = "approved"
	SegmentRejected SegmentKind = "rejected"
)

// Segment is a contiguous piece of a rendered line. Pending and rejected
// segments show the original text; approved segments show the replacement.
type Segment struct {
	Kind         SegmentKind `json:"kind"`
	Text         string      `json:"text"`
	SuggestionID string      `json:"suggestionId,omitempty"`
	Replacement  string      `json:"replacement,omitempty"`
}

// RenderedLine is one line of the highlighted view.
type RenderedLine struct {
	Number   int       `json:"number"`
	Blank    bool      `json:"blank"`
	Segments []Segment `json:"segments"`
}

type placed struct {
	span       types.Span
	suggestion *types.Suggestion
}

// RenderLines splits every line into plain and highlighted segments. Only
// applicable suggestions are highlighted. When two spans overlap, the one
// declared first wins. Blank lines render as a single empty plain segment.
// An empty document renders no lines.
func RenderLines(doc *Document, suggestions []types.Suggestion) []RenderedLine {
	if doc.Empty() {
		return nil
	}

	byLine := make(map[int][]placed)
	for i := range suggestions {
		s := &suggestions[i]
		if !Applicable(doc, s) {
			continue
		}
		span, _ := Locate(doc, s)
		if overlapsAny(byLine[span.Line], span) {
			continue
		}
		byLine[span.Line] = append(byLine[span.Line], placed{span: span, suggestion: s})
	}

	out := make([]RenderedLine, 0, doc.LineCount())
	for n, line := range doc.lines {
		number := n + 1
		if strings.TrimSpace(line) == "" {
			out = append(out, RenderedLine{Number: number, Blank: true, Segments: []Segment{{Kind: SegmentPlain, Text: line}}})
			continue
		}
		spans := byLine[number]
		sort.Slice(spans, func(i, j int) bool { return spans[i].span.Start < spans[j].span.Start })

		var segments []Segment
		pos := 0
		for _, p := range spans {
			if p.span.Start > pos {
				segments = append(segments, Segment{Kind: SegmentPlain, Text: line[pos:p.span.Start]})
			}
			segments = append(segments, highlight(p.suggestion, line[p.span.Start:p.span.End]))
			pos = p.span.End
		}
		if pos < len(line) {
			segments = append(segments, Segment{Kind: SegmentPlain, Text: line[pos:]})
		}
		out = append(out, RenderedLine{Number: number, Segments: segments})
	}
	return out
}

func overlapsAny(existing []placed, span types.Span) bool {
	for _, p := range existing {
		if span.Start < p.span.End && p.span.Start < span.End {
			return true
		}
	}
	return false
}

func highlight(s *types.Suggestion, original string) Segment {
	seg := Segment{SuggestionID: s.ID, Replacement: s.SuggestedText}
	switch s.Status {
	case types.StatusApproved:
		seg.Kind = SegmentApproved
		seg.Text = s.SuggestedText
	case types.StatusRejected:
		seg.Kind = SegmentRejected
		seg.Text = original
	default:
		seg.Kind = SegmentPending
		seg.Text = original
	}
	return seg
}

// FormatLine renders a line as plain text with inline markers:
// pending as [[original -> replacement]], approved as {+replacement+} and
// rejected as ~~original~~.
func FormatLine(line RenderedLine) string {
	var b strings.Builder
	for _, seg := range line.Segments {
		switch seg.Kind {
		case SegmentPending:
			b.WriteString("[[" + seg.Text + " -> " + seg.Replacement + "]]")
		case SegmentApproved:
			b.WriteString("{+" + seg.Text + "+}")
		case SegmentRejected:
			b.WriteString("~~" + seg.Text + "~~")
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
