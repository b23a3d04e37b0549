package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	inputs := []Input{
		{FileName: "a.txt", Text: "Comply with IBC 2015."},
		{FileName: "b.txt", Text: ""},
		{FileName: "c.txt", Text: "Sherwin Williams and Georgia Pacific"},
	}
	for i := 0; i < 10; i++ {
		inputs = append(inputs, Input{FileName: fmt.Sprintf("extra-%d.txt", i), Text: "NEC 2017"})
	}

	results, err := NewAnalyzer(Options{Concurrency: 3}).AnalyzeBatch(t.Context(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	assert.Equal(t, "a.txt", results[0].Document.FileName)
	assert.Len(t, results[0].Suggestions, 1)
	assert.True(t, results[1].Summary.Empty)
	assert.Len(t, results[2].Suggestions, 2)
	for _, r := range results[3:] {
		assert.Len(t, r.Suggestions, 1)
		assert.Equal(t, "sug-001", r.Suggestions[0].ID)
	}
}

func TestAnalyzeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewAnalyzer(Options{}).AnalyzeBatch(ctx, []Input{{FileName: "a.txt", Text: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	results, err := NewAnalyzer(Options{}).AnalyzeBatch(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
