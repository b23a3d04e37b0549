package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Advisor, "review-suggestions")
	require.NoError(t, err)
	assert.Contains(t, prompt, "senior construction specification reviewer")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(Advisor, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Context:\n{{.Context}}\nRequest: {{.Prompt}}", map[string]string{
		"Context": "Occupied clinic",
		"Prompt":  "How do we phase?",
	})
	assert.Equal(t, "Context:\nOccupied clinic\nRequest: How do we phase?", result)
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", result)
}

func TestFormat_EmptyData(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", nil))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(Advisor)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"advisor-context",
		"advisor-preamble",
		"advisor-request",
		"extract-charter",
		"extraction-rules",
		"review-suggestions",
	}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(Advisor, "advisor-preamble")
	require.NoError(t, err)
	prompt2, err := Get(Advisor, "advisor-preamble")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
