package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCharter_FieldsTrimAndSkipBlank(t *testing.T) {
	charter := &Charter{
		ProjectName: "  Harbor Library  ",
		Location:    "   ",
		Objectives:  []string{"LEED Silver", " ", "  Daylighting "},
	}

	fields := charter.Fields()
	require.Len(t, fields, 17)

	name, ok := charter.Field(FieldProjectName)
	require.True(t, ok)
	assert.True(t, name.Present())
	assert.False(t, name.List)
	assert.Equal(t, []string{"Harbor Library"}, name.Values)

	location, ok := charter.Field(FieldLocation)
	require.True(t, ok)
	assert.False(t, location.Present())
	assert.Equal(t, "", location.Joined())

	objectives, ok := charter.Field(FieldObjectives)
	require.True(t, ok)
	assert.True(t, objectives.List)
	assert.Equal(t, "Project Objectives", objectives.Label)
	assert.Equal(t, "LEED Silver, Daylighting", objectives.Joined())

	_, ok = charter.Field("unknown")
	assert.False(t, ok)
}

func TestCharter_NilFields(t *testing.T) {
	var charter *Charter
	fields := charter.Fields()
	require.Len(t, fields, 17)
	for _, f := range fields {
		assert.False(t, f.Present(), f.Name)
	}
}

func TestCharter_JSONAndYAMLKeys(t *testing.T) {
	charter := Charter{ProjectName: "Harbor Library", SafetyRequirements: []string{"Daily toolbox talks"}}

	jsonBytes, err := json.Marshal(charter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"projectName":"Harbor Library","safetyRequirements":["Daily toolbox talks"]}`, string(jsonBytes))

	var fromYAML Charter
	require.NoError(t, yaml.Unmarshal([]byte("projectName: Harbor Library\nsafetyRequirements:\n  - Daily toolbox talks\n"), &fromYAML))
	assert.Equal(t, charter, fromYAML)
}
