package review

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// Current code and standard editions used by the default rules.
const (
	CurrentICodeEdition  = 2024
	CurrentNFPA70Edition = 2023
	CurrentASHRAEEdition = 2022
)

// Rule detects one class of line-level issue. Replace receives the matched
// text and its submatches and returns the replacement, or false to skip the match.
type Rule struct {
	ID          string
	Title       string
	Description string // may contain %[1]s (original) and %[2]s (suggested)
	Type        types.SuggestionType
	Priority    types.Priority
	Category    string
	Pattern     *regexp.Regexp
	Replace     func(match string, groups []string) (string, bool)
}

// DefaultRules returns the built-in analysis rules in evaluation order.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			ID:          "icode-edition",
			Title:       "Outdated building code edition",
			Description: "%[1]s is superseded. Reference %[2]s, the edition adopted for new work.",
			Type:        types.SuggestionUpdate,
			Priority:    types.PriorityHigh,
			Category:    "Building Codes",
			Pattern:     regexp.MustCompile(`\b(IBC|IFC|IECC|IPC|IMC|International (?:Building|Fire|Energy Conservation|Plumbing|Mechanical) Code),? (?:\()?(20\d{2})\b`),
			Replace:     editionReplacer(2, CurrentICodeEdition),
		},
		{
			ID:          "nfpa70-edition",
			Title:       "Outdated electrical code edition",
			Description: "%[1]s is not the current National Electrical Code. Cite %[2]s.",
			Type:        types.SuggestionCompliance,
			Priority:    types.PriorityHigh,
			Category:    "Building Codes",
			Pattern:     regexp.MustCompile(`\b(NFPA 70|NEC),? (20\d{2})\b`),
			Replace:     editionReplacer(2, CurrentNFPA70Edition),
		},
		{
			ID:          "ashrae-901-edition",
			Title:       "Outdated energy standard",
			Description: "%[1]s has been superseded by %[2]s.",
			Type:        types.SuggestionCompliance,
			Priority:    types.PriorityMedium,
			Category:    "Energy",
			Pattern:     regexp.MustCompile(`\bASHRAE (?:Standard )?90\.1-(20\d{2})\b`),
			Replace:     editionReplacer(1, CurrentASHRAEEdition),
		},
	}

	for _, s := range supersededStandards {
		rules = append(rules, literalRule("superseded-standard", "Superseded standard citation",
			"%[1]s has been withdrawn or superseded. Cite %[2]s.",
			types.SuggestionCompliance, types.PriorityMedium, "Referenced Standards", s.pattern, s.replacement))
	}
	for _, m := range manufacturerNames {
		rules = append(rules, literalRule("manufacturer-name", "Outdated manufacturer name",
			"The manufacturer now does business as %[2]s.",
			types.SuggestionUpdate, types.PriorityLow, "Products", m.pattern, m.replacement))
	}

	rules = append(rules,
		Rule{
			ID:          "approved-equal",
			Title:       "Open-ended substitution language",
			Description: "Remove %[1]q. Substitutions are governed by Section 012500.",
			Type:        types.SuggestionRemoval,
			Priority:    types.PriorityMedium,
			Category:    "Substitutions",
			Pattern:     regexp.MustCompile(`(?i),? or approved equal`),
			Replace:     func(string, []string) (string, bool) { return "", true },
		},
		Rule{
			ID:          "warranty-term",
			Title:       "Warranty term not specified",
			Description: "State a written warranty with a minimum term instead of %[1]q.",
			Type:        types.SuggestionAddition,
			Priority:    types.PriorityLow,
			Category:    "Warranties",
			Pattern:     regexp.MustCompile(`(?i)\bmanufacturer's warranty\b`),
			Replace: func(string, []string) (string, bool) {
				return "manufacturer's standard written warranty with a minimum term of five years", true
			},
		},
	)
	return rules
}

type literalReplacement struct {
	pattern     string
	replacement string
}

var supersededStandards = []literalReplacement{
	{`\bANSI A117\.1-(?:19|20)\d{2}\b`, "ICC A117.1-2017"},
	{`\bASHRAE 62-(?:19|20)\d{2}\b`, "ASHRAE 62.1-2022"},
	{`\bASME A17\.1-(?:2000|2004|2007|2010)\b`, "ASME A17.1-2019"},
	{`\bUniform Building Code\b`, "International Building Code 2024"},
	{`\bBOCA National Building Code\b`, "International Building Code 2024"},
}

var manufacturerNames = []literalReplacement{
	{`\bOwens-Corning Fiberglas\b`, "Owens Corning"},
	{`\bSherwin Williams\b`, "Sherwin-Williams"},
	{`\bGeorgia Pacific\b`, "Georgia-Pacific"},
	{`\bJohns-Manville\b`, "Johns Manville"},
	{`\bTrane Company\b`, "Trane Technologies"},
}

func literalRule(id, title, description string, typ types.SuggestionType, priority types.Priority, category, pattern, replacement string) Rule {
	return Rule{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        typ,
		Priority:    priority,
		Category:    category,
		Pattern:     regexp.MustCompile(pattern),
		Replace: func(match string, _ []string) (string, bool) {
			return replacement, match != replacement
		},
	}
}

// editionReplacer swaps the year captured in group for current when it is older.
func editionReplacer(group, current int) func(string, []string) (string, bool) {
	return func(match string, groups []string) (string, bool) {
		if group >= len(groups) {
			return "", false
		}
		year, err := strconv.Atoi(groups[group])
		if err != nil || year >= current {
			return "", false
		}
		idx := strings.LastIndex(match, groups[group])
		return match[:idx] + strconv.Itoa(current) + match[idx+len(groups[group]):], true
	}
}

func (r Rule) describe(original, suggested string) string {
	if !strings.Contains(r.Description, "%[") {
		return r.Description
	}
	return fmt.Sprintf(r.Description, original, suggested)
}
