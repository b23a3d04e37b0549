package review

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advisorWith(reply string, err error) (*AdvisorAnalyzer, *llm.MockClient) {
	mock := &llm.MockClient{
		JSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return reply, err
		},
	}
	return NewAdvisorAnalyzer(llm.NewAdvisor(mock, llm.AdvisorOptions{})), mock
}

func TestAdvisorAnalyzer_Suggest(t *testing.T) {
	reply := "```json\n" + `{"suggestions": [
		{"title": "Update product", "type": "Update", "priority": "HIGH", "category": "Products", "lineNumber": 1, "originalText": "Product X", "suggestedText": "Product Y"},
		{"title": "Phantom", "type": "compliance", "priority": "low", "lineNumber": 2, "originalText": "not there", "suggestedText": "x"}
	]}` + "\n```"
	analyzer, mock := advisorWith(reply, nil)

	suggestions, err := analyzer.Suggest(t.Context(), NewDocument("a.txt", "Line1: use Product X\nLine2: ok"))
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "ai-001", suggestions[0].ID)
	assert.Equal(t, types.SuggestionUpdate, suggestions[0].Type)
	assert.Equal(t, types.PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, types.StatusPending, suggestions[0].Status)
	assert.True(t, suggestions[0].Renderable)
	require.NotNil(t, suggestions[0].Anchor)
	assert.Equal(t, types.Span{Line: 1, Start: 11, End: 20}, *suggestions[0].Anchor)

	assert.Equal(t, "ai-002", suggestions[1].ID)
	assert.False(t, suggestions[1].Renderable)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "1: Line1: use Product X")
	assert.Contains(t, prompts[0], "2: Line2: ok")
}

func TestAdvisorAnalyzer_SchemaMismatch(t *testing.T) {
	analyzer, _ := advisorWith(`{"suggestions": [{"title": "missing fields"}]}`, nil)

	_, err := analyzer.Suggest(t.Context(), NewDocument("a.txt", "text"))
	var advisorErr *AdvisorError
	require.ErrorAs(t, err, &advisorErr)
}

func TestAdvisorAnalyzer_ServiceErrorPassesThrough(t *testing.T) {
	analyzer, _ := advisorWith("", errors.New("quota exceeded for this project"))

	_, err := analyzer.Suggest(t.Context(), NewDocument("a.txt", "text"))
	require.Error(t, err)
	assert.True(t, llm.IsConfiguration(err))
}

func TestAdvisorAnalyzer_EmptyDocumentSkipsService(t *testing.T) {
	analyzer, mock := advisorWith(`{"suggestions": []}`, nil)

	suggestions, err := analyzer.Suggest(t.Context(), NewDocument("a.txt", "  "))
	require.NoError(t, err)
	assert.Empty(t, suggestions)
	assert.Empty(t, mock.Prompts())
}

func TestMerge(t *testing.T) {
	base := []types.Suggestion{suggestion("sug-001", 1, "A", "a")}
	extra := []types.Suggestion{suggestion("sug-001", 1, "B", "b"), suggestion("ai-001", 1, "C", "c")}

	merged := Merge(base, extra)
	require.Len(t, merged, 3)
	assert.Equal(t, "sug-001", merged[0].ID)
	assert.Equal(t, "sug-001-2", merged[1].ID)
	assert.Equal(t, "ai-001", merged[2].ID)
	assert.Equal(t, "sug-001", extra[0].ID)
}
