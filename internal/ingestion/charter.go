package ingestion

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/schemas"
	"github.com/jonathan/spec-customizer/internal/types"
	embedded "github.com/jonathan/spec-customizer/schemas"
	"gopkg.in/yaml.v3"
)

// LoadCharter reads a charter from a .json, .yaml or .yml file. JSON
// charters are checked against the charter schema; YAML charters are
// converted to JSON and checked the same way.
func LoadCharter(path string) (*types.Charter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Path: path, Message: "charter file not found", Cause: err}
		}
		return nil, &Error{Path: path, Message: "failed to read charter file", Cause: err}
	}
	return ParseCharter(path, data)
}

// ParseCharter decodes charter bytes; the file name selects JSON or YAML.
func ParseCharter(fileName string, data []byte) (*types.Charter, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		var charter types.Charter
		if err := yaml.Unmarshal(data, &charter); err != nil {
			return nil, &Error{Path: fileName, Message: "invalid YAML charter", Cause: err}
		}
		asJSON, err := json.Marshal(&charter)
		if err != nil {
			return nil, &Error{Path: fileName, Message: "failed to encode charter", Cause: err}
		}
		data = asJSON
	}
	return decodeCharterJSON(fileName, data)
}

func decodeCharterJSON(fileName string, data []byte) (*types.Charter, error) {
	if err := schemas.Validate(embedded.Charter, data); err != nil {
		return nil, &Error{Path: fileName, Message: "charter does not match schema", Cause: err}
	}
	var charter types.Charter
	if err := json.Unmarshal(data, &charter); err != nil {
		return nil, &Error{Path: fileName, Message: "invalid JSON charter", Cause: err}
	}
	return &charter, nil
}

// ExtractCharter asks the advisory service to read charter fields out of a
// free-text project charter. Service failures are returned unchanged so
// callers can tell transient from configuration problems.
func ExtractCharter(ctx context.Context, advisor *llm.Advisor, fileName, text string) (*types.Charter, error) {
	if strings.TrimSpace(text) == "" {
		return &types.Charter{}, nil
	}
	prompt := llm.BuildExtractionPrompt(llm.CharterSchema(), text)
	raw, err := advisor.RespondJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}
	return decodeCharterJSON(fileName, []byte(llm.CleanJSONBlock(raw)))
}
