package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCharter_JSON(t *testing.T) {
	charter, err := ParseCharter("c.json", []byte(`{"description": "office renovation", "qualityRequirements": []}`))
	require.NoError(t, err)
	assert.Equal(t, "office renovation", charter.Description)
	assert.Empty(t, charter.QualityRequirements)
}

func TestParseCharter_YAML(t *testing.T) {
	yamlCharter := `
projectName: Riverside Library
sustainabilityGoals:
  - LEED Gold
  - 75% waste diversion
`
	charter, err := ParseCharter("c.yaml", []byte(yamlCharter))
	require.NoError(t, err)
	assert.Equal(t, "Riverside Library", charter.ProjectName)
	assert.Equal(t, []string{"LEED Gold", "75% waste diversion"}, charter.SustainabilityGoals)
}

func TestParseCharter_SchemaViolation(t *testing.T) {
	_, err := ParseCharter("c.json", []byte(`{"objectives": "one"}`))
	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Contains(t, err.Error(), "schema")

	_, err = ParseCharter("c.yml", []byte("objectives: [unclosed"))
	require.ErrorAs(t, err, &ingestErr)
}

func TestLoadCharter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projectName": "Depot"}`), 0644))

	charter, err := LoadCharter(path)
	require.NoError(t, err)
	assert.Equal(t, "Depot", charter.ProjectName)

	_, err = LoadCharter(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestExtractCharter(t *testing.T) {
	mock := &llm.MockClient{JSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
		return "Here you go: {\"projectName\": \"Depot\", \"objectives\": [\"Reopen by May\"]}", nil
	}}
	advisor := llm.NewAdvisor(mock, llm.AdvisorOptions{})

	charter, err := ExtractCharter(t.Context(), advisor, "charter.txt", "The Depot project aims to reopen by May.")
	require.NoError(t, err)
	assert.Equal(t, "Depot", charter.ProjectName)
	assert.Equal(t, []string{"Reopen by May"}, charter.Objectives)

	empty, err := ExtractCharter(t.Context(), advisor, "charter.txt", "  ")
	require.NoError(t, err)
	assert.Equal(t, "", empty.ProjectName)
	assert.Len(t, mock.Prompts(), 1)
}

func TestExtractCharter_ServiceError(t *testing.T) {
	advisor := llm.NewAdvisor(nil, llm.AdvisorOptions{})
	_, err := ExtractCharter(t.Context(), advisor, "charter.txt", "text")
	assert.True(t, llm.IsConfiguration(err))
}
