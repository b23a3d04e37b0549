package review

import (
	"testing"

	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLines_States(t *testing.T) {
	doc := NewDocument("a.txt", "Use Product X here\n\nend")
	base := suggestion("s1", 1, "Product X", "Product Y")

	tests := []struct {
		status types.SuggestionStatus
		kind   SegmentKind
		text   string
		format string
	}{
		{types.StatusPending, SegmentPending, "Product X", "Use [[Product X -> Product Y]] here"},
		{types.StatusApproved, SegmentApproved, "Product Y", "Use {+Product Y+} here"},
		{types.StatusRejected, SegmentRejected, "Product X", "Use ~~Product X~~ here"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := base
			s.Status = tt.status
			lines := RenderLines(doc, []types.Suggestion{s})
			require.Len(t, lines, 3)

			assert.Equal(t, []Segment{
				{Kind: SegmentPlain, Text: "Use "},
				{Kind: tt.kind, Text: tt.text, SuggestionID: "s1", Replacement: "Product Y"},
				{Kind: SegmentPlain, Text: " here"},
			}, lines[0].Segments)
			assert.Equal(t, tt.format, FormatLine(lines[0]))

			assert.True(t, lines[1].Blank)
			assert.Equal(t, []Segment{{Kind: SegmentPlain, Text: ""}}, lines[1].Segments)
			assert.Equal(t, 3, lines[2].Number)
			assert.Equal(t, "end", FormatLine(lines[2]))
		})
	}
}

func TestRenderLines_OverlapFirstDeclaredWins(t *testing.T) {
	doc := NewDocument("a.txt", "Use Product X here")
	lines := RenderLines(doc, []types.Suggestion{
		suggestion("first", 1, "Product X", "Product Y"),
		suggestion("second", 1, "X here", "Z there"),
	})

	require.Len(t, lines, 1)
	var ids []string
	for _, seg := range lines[0].Segments {
		if seg.SuggestionID != "" {
			ids = append(ids, seg.SuggestionID)
		}
	}
	assert.Equal(t, []string{"first"}, ids)
}

func TestRenderLines_MultipleSpansSorted(t *testing.T) {
	doc := NewDocument("a.txt", "A then B")
	lines := RenderLines(doc, []types.Suggestion{
		suggestion("b", 1, "B", "b"),
		suggestion("a", 1, "A", "a"),
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "[[A -> a]] then [[B -> b]]", FormatLine(lines[0]))
}

func TestRenderLines_ApprovedRemoval(t *testing.T) {
	suggestions := Analyze("a.txt", "Paint, or approved equal.")
	require.Len(t, suggestions, 1)
	suggestions[0].Status = types.StatusApproved

	lines := RenderLines(NewDocument("a.txt", "Paint, or approved equal."), suggestions)
	assert.Equal(t, "Paint{++}.", FormatLine(lines[0]))
}

func TestRenderLines_StaleAnchorFallsBackToSearch(t *testing.T) {
	s := suggestion("s1", 1, "Product X", "Product Y")
	s.Anchor = &types.Span{Line: 1, Start: 0, End: 3}

	lines := RenderLines(NewDocument("a.txt", "Use Product X"), []types.Suggestion{s})
	assert.Equal(t, "Use [[Product X -> Product Y]]", FormatLine(lines[0]))
}

func TestLocate(t *testing.T) {
	doc := NewDocument("a.txt", "Product X and Product X")
	s := suggestion("s1", 1, "Product X", "Product Y")

	span, ok := Locate(doc, &s)
	assert.True(t, ok)
	assert.Equal(t, types.Span{Line: 1, Start: 0, End: 9}, span)

	s.Anchor = &types.Span{Line: 1, Start: 14, End: 23}
	span, ok = Locate(doc, &s)
	assert.True(t, ok)
	assert.Equal(t, 14, span.Start)

	empty := suggestion("s2", 1, "", "x")
	_, ok = Locate(doc, &empty)
	assert.False(t, ok)
}
