package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSpecification(t *testing.T) {
	dir := t.TempDir()
	charterPath := writeTestFile(t, dir, "harbor.json", testCharterJSON)
	specPath := filepath.Join(dir, "spec.json")
	require.NoError(t, synthesizeCharter(t.Context(), synthesizeOptions{Charter: charterPath, Out: specPath}))

	tests := []struct {
		format string
		file   string
		want   string
	}{
		{"html", "spec.html", "<!DOCTYPE html>"},
		{"pdf", "spec.tex", `\section*`},
		{"markdown", "spec.md", "## SECTION 011000"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(dir, tt.file)
			require.NoError(t, exportSpecification(specPath, tt.format, out))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
			assert.Contains(t, string(data), "Harbor Clinic")
		})
	}
}

func TestExportSpecification_InvalidInput(t *testing.T) {
	dir := t.TempDir()

	notSpec := writeTestFile(t, dir, "charter.json", testCharterJSON)
	err := exportSpecification(notSpec, "html", filepath.Join(dir, "out.html"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid specification file"))

	err = exportSpecification(filepath.Join(dir, "missing.json"), "html", "")
	assert.Error(t, err)

	err = exportSpecification(notSpec, "rtf", "")
	assert.Error(t, err)
}
