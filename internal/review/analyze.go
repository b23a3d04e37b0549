package review

import (
	"fmt"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// Options configures an Analyzer.
type Options struct {
	Rules       []Rule
	Concurrency int // batch worker limit; <= 0 means unlimited
}

// Analyzer produces suggestions for documents. It is stateless and safe for
// concurrent use.
type Analyzer struct {
	rules       []Rule
	concurrency int
}

// NewAnalyzer creates an analyzer. A nil rule set falls back to DefaultRules.
func NewAnalyzer(opts Options) *Analyzer {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &Analyzer{rules: rules, concurrency: opts.Concurrency}
}

// Analysis is the result of analyzing one document.
type Analysis struct {
	Document    *Document
	Suggestions []types.Suggestion
	Summary     Summary
}

// Summary aggregates an analysis for display.
type Summary struct {
	FileName        string                         `json:"fileName"`
	TotalLines      int                            `json:"totalLines"`
	NonEmptyLines   int                            `json:"nonEmptyLines"`
	Empty           bool                           `json:"empty"`
	SuggestionCount int                            `json:"suggestionCount"`
	ByType          map[types.SuggestionType]int   `json:"byType"`
	ByPriority      map[types.Priority]int         `json:"byPriority"`
	ByStatus        map[types.SuggestionStatus]int `json:"byStatus"`
}

// Analyze runs the default rules over text and returns the suggestions.
func Analyze(fileName, text string) []types.Suggestion {
	return NewAnalyzer(Options{}).Analyze(fileName, text).Suggestions
}

// Analyze inspects every line of text. Each rule yields at most one
// suggestion per distinct matched text on a line; ids are assigned in
// line-then-rule order as sug-001, sug-002, ...
func (a *Analyzer) Analyze(fileName, text string) *Analysis {
	return a.AnalyzeDocument(NewDocument(fileName, text))
}

// AnalyzeDocument is Analyze for an already wrapped document.
func (a *Analyzer) AnalyzeDocument(doc *Document) *Analysis {
	suggestions := []types.Suggestion{}
	if !doc.Empty() {
		for n, line := range doc.lines {
			for _, rule := range a.rules {
				suggestions = append(suggestions, applyRule(rule, n+1, line)...)
			}
		}
	}
	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("sug-%03d", i+1)
	}
	return &Analysis{
		Document:    doc,
		Suggestions: suggestions,
		Summary:     Summarize(doc, suggestions),
	}
}

func applyRule(rule Rule, lineNumber int, line string) []types.Suggestion {
	var out []types.Suggestion
	seen := make(map[string]bool)
	for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = line[loc[2*g]:loc[2*g+1]]
			}
		}
		match := groups[0]
		if seen[match] {
			continue
		}
		replacement, ok := rule.Replace(match, groups)
		if !ok {
			continue
		}
		seen[match] = true

		n := lineNumber
		original := match
		out = append(out, types.Suggestion{
			Title:         rule.Title,
			Description:   rule.describe(original, replacement),
			Type:          rule.Type,
			Priority:      rule.Priority,
			Category:      rule.Category,
			LineNumber:    &n,
			OriginalText:  &original,
			SuggestedText: replacement,
			Status:        types.StatusPending,
			Anchor:        &types.Span{Line: lineNumber, Start: loc[0], End: loc[1]},
			Renderable:    replacement != "" || rule.Type == types.SuggestionRemoval,
		})
	}
	return out
}

// Summarize counts suggestions by type, priority and status.
func Summarize(doc *Document, suggestions []types.Suggestion) Summary {
	s := Summary{
		FileName:        doc.FileName,
		TotalLines:      doc.LineCount(),
		Empty:           doc.Empty(),
		SuggestionCount: len(suggestions),
		ByType:          make(map[types.SuggestionType]int),
		ByPriority:      make(map[types.Priority]int),
		ByStatus:        make(map[types.SuggestionStatus]int),
	}
	for _, line := range doc.lines {
		if strings.TrimSpace(line) != "" {
			s.NonEmptyLines++
		}
	}
	for _, sug := range suggestions {
		s.ByType[sug.Type]++
		s.ByPriority[sug.Priority]++
		s.ByStatus[sug.Status]++
	}
	return s
}
