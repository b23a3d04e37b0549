package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSpecification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	spec := &types.GeneratedSpecification{
		Sections: []types.GeneratedSection{
			{
				Number: "011000",
				Title:  "Summary",
				Parts: []types.GeneratedPart{{
					Number: "1",
					Title:  "General",
					Articles: []types.GeneratedArticle{
						{Number: "1.1.1", Provenance: types.ProvenanceCharter},
						{Number: "1.1.2", Provenance: types.ProvenanceTemplate},
					},
				}},
			},
		},
		Metadata: types.SpecificationMetadata{
			CharterSource: "harbor.yaml",
			Completeness:  41,
			MissingFields: []string{"Owner", "Architect", "Budget", "Schedule", "Location", "Contractor", "Stakeholders"},
		},
	}

	p.PrintSpecification(spec)
	output := buf.String()

	assert.Contains(t, output, "GENERATED SPECIFICATION")
	assert.Contains(t, output, "harbor.yaml")
	assert.Contains(t, output, "41%")
	assert.Contains(t, output, "2 articles, 1 from charter")
	assert.Contains(t, output, "• Owner")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Stakeholders")
}

func TestPrintSpecification_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSpecification(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTips(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tips := make([]types.AITip, 7)
	for i := range tips {
		tips[i] = types.AITip{SectionNumber: "013300", Kind: types.TipMissing, Message: fmt.Sprintf("tip %d", i)}
	}
	p.PrintTips(tips)
	output := buf.String()

	assert.Contains(t, output, "AI TIPS")
	assert.Contains(t, output, "7 tips")
	assert.Contains(t, output, "[013300] missing")
	assert.Contains(t, output, "tip 4")
	assert.NotContains(t, output, "tip 5")
	assert.Contains(t, output, "... and 2 more tips")
}

func TestPrintTips_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTips(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := review.NewAnalyzer(review.Options{}).Analyze("013300.txt", "Comply with IBC 2015.")
	p.PrintSuggestions(analysis.Summary, analysis.Suggestions)
	output := buf.String()

	assert.Contains(t, output, "REVIEW: 013300.txt")
	assert.Contains(t, output, "Suggestions: 1")
	assert.Contains(t, output, "sug-001  L1")
	assert.Contains(t, output, `"IBC 2015" → "IBC 2024"`)
}

func TestPrintSuggestions_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := review.NewAnalyzer(review.Options{}).Analyze("blank.txt", "  \n")
	p.PrintSuggestions(analysis.Summary, analysis.Suggestions)

	assert.Contains(t, buf.String(), "Document is empty")
}

func TestPrintDecisions(t *testing.T) {
	var buf bytes.Buffer
	summary := review.Summary{
		FileName: "a.txt",
		ByStatus: map[types.SuggestionStatus]int{types.StatusApproved: 2, types.StatusPending: 1},
	}

	NewPrinter(&buf).PrintDecisions(summary)

	assert.Equal(t, "a.txt: 2 approved, 0 rejected, 1 pending\n", buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
