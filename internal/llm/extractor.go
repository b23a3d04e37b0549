package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/spec-customizer/internal/prompts"
)

// ExtractionSchema describes the JSON an extraction prompt asks for.
type ExtractionSchema struct {
	Name        string
	Description string // system preamble describing the task
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string
	Type        string // type hint shown to the model
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(prompts.MustGet(prompts.Advisor, "extraction-rules"))
	sb.WriteString("\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// SuggestionListSchema asks for line-anchored review suggestions. The input
// text is expected to be numbered as "N: line".
func SuggestionListSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "SuggestionList",
		Description: prompts.MustGet(prompts.Advisor, "review-suggestions"),
		Fields: []SchemaField{
			{
				Name:        "suggestions",
				Type:        `[{"title": "string", "description": "string", "type": "compliance|update|addition|removal", "priority": "high|medium|low", "category": "string", "lineNumber": int, "originalText": "string", "suggestedText": "string"}]`,
				Description: "One entry per discrete change; empty list when nothing needs changing",
				Required:    true,
			},
		},
	}
}

// CharterSchema asks for project charter fields from a free-text charter.
func CharterSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ProjectCharter",
		Description: prompts.MustGet(prompts.Advisor, "extract-charter"),
		Fields: []SchemaField{
			{Name: "projectName", Type: `"string"`},
			{Name: "description", Type: `"string"`, Description: "Scope of work in one sentence"},
			{Name: "location", Type: `"string"`},
			{Name: "owner", Type: `"string"`},
			{Name: "architect", Type: `"string"`},
			{Name: "contractor", Type: `"string"`},
			{Name: "contractType", Type: `"string"`},
			{Name: "schedule", Type: `"string"`},
			{Name: "budget", Type: `"string"`},
			{Name: "objectives", Type: `["string"]`},
			{Name: "stakeholders", Type: `["string"]`},
			{Name: "constraints", Type: `["string"]`},
			{Name: "sustainabilityGoals", Type: `["string"]`},
			{Name: "qualityRequirements", Type: `["string"]`},
			{Name: "submittalProcedures", Type: `["string"]`},
			{Name: "wasteManagementGoals", Type: `["string"]`},
			{Name: "safetyRequirements", Type: `["string"]`},
		},
	}
}
