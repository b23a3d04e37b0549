// Package schemas holds the JSON Schema documents for charter input,
// generated specifications and advisor suggestion output.
package schemas

import "embed"

// Schema file names
const (
	Charter            = "charter.schema.json"
	Specification      = "specification.schema.json"
	AdvisorSuggestions = "advisor_suggestions.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
