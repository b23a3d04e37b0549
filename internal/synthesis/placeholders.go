// Package synthesis turns charter data into a populated Division 01 specification.
package synthesis

import (
	"regexp"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
)

// placeholderPattern matches tokens such as [PROJECT_DESCRIPTION]. The
// "[TO BE DETERMINED]" sentinel contains spaces and never matches.
var placeholderPattern = regexp.MustCompile(`\[[A-Z][A-Z0-9_]*\]`)

// TokenRule maps one placeholder token to an extraction/formatting rule over charter fields.
type TokenRule struct {
	Token  string
	Label  string
	Fields []string
	format func(fields []types.CharterField) (string, bool)
}

// Resolve extracts the token value from the charter. It returns the formatted
// value, the names of the fields that contributed, and whether the token resolved.
func (r TokenRule) Resolve(charter *types.Charter) (string, []string, bool) {
	byName := make(map[string]types.CharterField)
	for _, f := range charter.Fields() {
		byName[f.Name] = f
	}
	return r.resolve(byName)
}

func (r TokenRule) resolve(byName map[string]types.CharterField) (string, []string, bool) {
	fields := make([]types.CharterField, 0, len(r.Fields))
	var used []string
	for _, name := range r.Fields {
		f := byName[name]
		fields = append(fields, f)
		if f.Present() {
			used = append(used, name)
		}
	}
	value, ok := r.format(fields)
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil, false
	}
	return value, used, true
}

func joinedField(fields []types.CharterField) (string, bool) {
	if len(fields) == 0 || !fields[0].Present() {
		return "", false
	}
	return fields[0].Joined(), true
}

// projectTeam formats "Owner: X; Architect: Y; Contractor: Z" from the present parts.
func projectTeam(fields []types.CharterField) (string, bool) {
	var parts []string
	for _, f := range fields {
		if f.Present() {
			parts = append(parts, f.Label+": "+f.Joined())
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

func simple(token, label, field string) TokenRule {
	return TokenRule{Token: token, Label: label, Fields: []string{field}, format: joinedField}
}

// TokenTable returns every supported placeholder in a fixed order.
func TokenTable() []TokenRule {
	return []TokenRule{
		simple("[PROJECT_NAME]", "Project Name", types.FieldProjectName),
		simple("[PROJECT_DESCRIPTION]", "Project Description", types.FieldDescription),
		simple("[PROJECT_LOCATION]", "Project Location", types.FieldLocation),
		simple("[OWNER_NAME]", "Owner", types.FieldOwner),
		simple("[ARCHITECT_NAME]", "Architect", types.FieldArchitect),
		simple("[CONTRACTOR_NAME]", "Contractor", types.FieldContractor),
		simple("[CONTRACT_TYPE]", "Contract Type", types.FieldContractType),
		simple("[PROJECT_SCHEDULE]", "Project Schedule", types.FieldSchedule),
		simple("[PROJECT_OBJECTIVES]", "Project Objectives", types.FieldObjectives),
		simple("[PROJECT_CONSTRAINTS]", "Project Constraints", types.FieldConstraints),
		simple("[SUSTAINABILITY_GOALS]", "Sustainability Goals", types.FieldSustainabilityGoals),
		simple("[QUALITY_REQUIREMENTS]", "Quality Requirements", types.FieldQualityRequirements),
		simple("[SUBMITTAL_PROCEDURES]", "Submittal Procedures", types.FieldSubmittalProcedures),
		simple("[WASTE_MANAGEMENT_GOALS]", "Waste Management Goals", types.FieldWasteManagementGoals),
		simple("[SAFETY_REQUIREMENTS]", "Safety Requirements", types.FieldSafetyRequirements),
		{
			Token:  "[PROJECT_TEAM]",
			Label:  "Project Team (Owner, Architect, Contractor)",
			Fields: []string{types.FieldOwner, types.FieldArchitect, types.FieldContractor},
			format: projectTeam,
		},
	}
}

// FindPlaceholders returns the distinct placeholder tokens in text, in order of first appearance.
func FindPlaceholders(text string) []string {
	matches := placeholderPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// HumanizeToken turns "[FIRE_RATING]" into "Fire Rating".
func HumanizeToken(token string) string {
	inner := strings.Trim(token, "[]")
	words := strings.Split(strings.ToLower(inner), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func tokenIndex(rules []TokenRule) map[string]TokenRule {
	index := make(map[string]TokenRule, len(rules))
	for _, r := range rules {
		index[r.Token] = r
	}
	return index
}
