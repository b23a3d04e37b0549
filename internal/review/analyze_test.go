package review

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = "Comply with IBC 2015 and NFPA 70 2017.\n" +
	"\n" +
	"Provide Sherwin Williams paint, or approved equal.\n" +
	"Provide manufacturer's warranty.\n" +
	"IBC 2024 applies."

func TestAnalyze_SampleDocument(t *testing.T) {
	suggestions := Analyze("010000.txt", sampleSpec)
	require.Len(t, suggestions, 5)

	want := []struct {
		id, original, suggested string
		line                    int
		typ                     types.SuggestionType
	}{
		{"sug-001", "IBC 2015", "IBC 2024", 1, types.SuggestionUpdate},
		{"sug-002", "NFPA 70 2017", "NFPA 70 2023", 1, types.SuggestionCompliance},
		{"sug-003", "Sherwin Williams", "Sherwin-Williams", 3, types.SuggestionUpdate},
		{"sug-004", ", or approved equal", "", 3, types.SuggestionRemoval},
		{"sug-005", "manufacturer's warranty", "manufacturer's standard written warranty with a minimum term of five years", 4, types.SuggestionAddition},
	}
	for i, w := range want {
		s := suggestions[i]
		assert.Equal(t, w.id, s.ID)
		assert.Equal(t, w.original, s.Original())
		assert.Equal(t, w.suggested, s.SuggestedText)
		assert.Equal(t, w.line, s.Line())
		assert.Equal(t, w.typ, s.Type)
		assert.Equal(t, types.StatusPending, s.Status)
		assert.True(t, s.Renderable, s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Category)
	}

	require.NotNil(t, suggestions[0].Anchor)
	assert.Equal(t, types.Span{Line: 1, Start: 12, End: 20}, *suggestions[0].Anchor)
	assert.Contains(t, suggestions[0].Description, "IBC 2015")
	assert.Contains(t, suggestions[0].Description, "IBC 2024")
}

func TestAnalyze_AnchorInvariant(t *testing.T) {
	doc := NewDocument("a.txt", sampleSpec)
	for _, s := range Analyze("a.txt", sampleSpec) {
		line, ok := doc.Line(s.Line())
		require.True(t, ok)
		require.NotNil(t, s.Anchor)
		assert.Equal(t, s.Original(), line[s.Anchor.Start:s.Anchor.End])
		assert.Contains(t, line, s.Original())
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	first, err := json.Marshal(Analyze("a.txt", sampleSpec))
	require.NoError(t, err)
	second, err := json.Marshal(Analyze("a.txt", sampleSpec))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		analysis := NewAnalyzer(Options{}).Analyze("empty.txt", text)
		assert.NotNil(t, analysis.Suggestions)
		assert.Empty(t, analysis.Suggestions)
		assert.True(t, analysis.Summary.Empty)
		assert.Nil(t, RenderLines(analysis.Document, analysis.Suggestions))
	}
}

func TestAnalyze_CurrentEditionsNotFlagged(t *testing.T) {
	text := "IBC 2024, NFPA 70 2023, ASHRAE 90.1-2022, Sherwin-Williams, manufacturer's standard written warranty"
	assert.Empty(t, Analyze("a.txt", text))
}

func TestAnalyze_SkipsCurrentMatchOnSameLine(t *testing.T) {
	suggestions := Analyze("a.txt", "Use IBC 2024 and IBC 2015.")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "IBC 2015", suggestions[0].Original())
	assert.Equal(t, 17, suggestions[0].Anchor.Start)
}

func TestAnalyze_RepeatedTextIsOneSuggestion(t *testing.T) {
	suggestions := Analyze("a.txt", "IBC 2015 here and IBC 2015 there; IFC 2018 too.")
	require.Len(t, suggestions, 2)
	assert.Equal(t, "IBC 2015", suggestions[0].Original())
	assert.Equal(t, "IFC 2018", suggestions[1].Original())
}

func TestAnalyze_EditionVariants(t *testing.T) {
	tests := []struct {
		text, original, suggested string
	}{
		{"International Building Code, 2018 edition", "International Building Code, 2018", "International Building Code, 2024"},
		{"ASHRAE 90.1-2016", "ASHRAE 90.1-2016", "ASHRAE 90.1-2022"},
		{"ASHRAE Standard 90.1-2019", "ASHRAE Standard 90.1-2019", "ASHRAE Standard 90.1-2022"},
		{"NEC 2020", "NEC 2020", "NEC 2023"},
		{"ANSI A117.1-2009", "ANSI A117.1-2009", "ICC A117.1-2017"},
		{"Uniform Building Code", "Uniform Building Code", "International Building Code 2024"},
		{"Georgia Pacific gypsum board", "Georgia Pacific", "Georgia-Pacific"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			suggestions := Analyze("a.txt", tt.text)
			require.Len(t, suggestions, 1)
			assert.Equal(t, tt.original, suggestions[0].Original())
			assert.Equal(t, tt.suggested, suggestions[0].SuggestedText)
		})
	}
}

func TestAnalyze_CustomRules(t *testing.T) {
	analyzer := NewAnalyzer(Options{Rules: []Rule{}})
	assert.Empty(t, analyzer.Analyze("a.txt", sampleSpec).Suggestions)
}

func TestAnalyze_Concurrent(t *testing.T) {
	analyzer := NewAnalyzer(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, analyzer.Analyze("a.txt", sampleSpec).Suggestions, 5)
		}()
	}
	wg.Wait()
}

func TestSummarize(t *testing.T) {
	analysis := NewAnalyzer(Options{}).Analyze("a.txt", sampleSpec)
	s := analysis.Summary

	assert.Equal(t, "a.txt", s.FileName)
	assert.Equal(t, 5, s.TotalLines)
	assert.Equal(t, 4, s.NonEmptyLines)
	assert.False(t, s.Empty)
	assert.Equal(t, 5, s.SuggestionCount)
	assert.Equal(t, 2, s.ByType[types.SuggestionUpdate])
	assert.Equal(t, 2, s.ByPriority[types.PriorityHigh])
	assert.Equal(t, 5, s.ByStatus[types.StatusPending])
}

func TestDocument(t *testing.T) {
	doc := NewDocument("a.txt", "one\n\nthree\n")
	assert.Equal(t, 4, doc.LineCount())
	line, ok := doc.Line(3)
	assert.True(t, ok)
	assert.Equal(t, "three", line)
	_, ok = doc.Line(0)
	assert.False(t, ok)
	_, ok = doc.Line(5)
	assert.False(t, ok)
	assert.Equal(t, "one\n\nthree\n", strings.Join(doc.Lines(), "\n"))
}

func TestDocumentFromJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		empty bool
		lines int
	}{
		{"string", `"a\nb"`, false, 2},
		{"null", `null`, true, 0},
		{"number", `42`, true, 0},
		{"object", `{"text": "x"}`, true, 0},
		{"missing", ``, true, 0},
		{"whitespace", `"  \n "`, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DocumentFromJSON("a.txt", json.RawMessage(tt.raw))
			assert.Equal(t, tt.empty, doc.Empty())
			assert.Equal(t, tt.lines, doc.LineCount())
			assert.Empty(t, NewAnalyzer(Options{}).AnalyzeDocument(doc).Suggestions)
		})
	}
}
