package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = "Comply with IBC 2015 and NFPA 70 2017.\n" +
	"\n" +
	"Provide Sherwin Williams paint, or approved equal."

func TestReviewDocuments_ApproveAll(t *testing.T) {
	dir := t.TempDir()
	docPath := writeTestFile(t, dir, "013300.txt", testDocument)
	outDir := filepath.Join(dir, "out")

	err := reviewDocuments(t.Context(), reviewOptions{
		Docs:       []string{docPath},
		OutDir:     outDir,
		Format:     "markdown",
		ApproveAll: true,
	})
	require.NoError(t, err)

	revised, err := os.ReadFile(filepath.Join(outDir, "013300-revised.md"))
	require.NoError(t, err)
	assert.Equal(t, "Comply with IBC 2024 and NFPA 70 2023.\n\nProvide Sherwin-Williams paint.", string(revised))

	data, err := os.ReadFile(filepath.Join(outDir, "013300.suggestions.json"))
	require.NoError(t, err)
	var report documentReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "013300.txt", report.FileName)
	require.Len(t, report.Suggestions, 4)
	for _, s := range report.Suggestions {
		assert.Equal(t, types.StatusApproved, s.Status)
	}
}

func TestReviewDocuments_MultipleWithoutApproval(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, dir, "a.txt", testDocument)
	second := writeTestFile(t, dir, "b.html", "<html><body><p>Comply with IBC 2018.</p></body></html>")
	outDir := filepath.Join(dir, "out")

	err := reviewDocuments(t.Context(), reviewOptions{
		Docs:        []string{first, second},
		OutDir:      outDir,
		Format:      "markdown",
		Concurrency: 2,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "a.suggestions.json"))
	assert.FileExists(t, filepath.Join(outDir, "b.suggestions.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "a-revised.md"))

	data, err := os.ReadFile(filepath.Join(outDir, "b.suggestions.json"))
	require.NoError(t, err)
	var report documentReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Suggestions, 1)
	assert.Equal(t, "IBC 2024", report.Suggestions[0].SuggestedText)
	assert.Equal(t, types.StatusPending, report.Suggestions[0].Status)
}

func TestReviewDocuments_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><main><p>Comply with NFPA 70 2017.</p></main></body></html>"))
	}))
	defer server.Close()
	outDir := filepath.Join(t.TempDir(), "out")

	err := reviewDocuments(t.Context(), reviewOptions{
		URLs:       []string{server.URL + "/specs/260500.html"},
		OutDir:     outDir,
		Format:     "markdown",
		ApproveAll: true,
	})
	require.NoError(t, err)

	revised, err := os.ReadFile(filepath.Join(outDir, "260500-revised.md"))
	require.NoError(t, err)
	assert.Equal(t, "Comply with NFPA 70 2023.", string(revised))
}

func TestReviewDocuments_SameFileNameDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, filepath.Join(dir, "a"), "013300.txt", "Comply with IBC 2015.")
	second := writeTestFile(t, filepath.Join(dir, "b"), "013300.txt", "Comply with NFPA 70 2017.")
	outDir := filepath.Join(dir, "out")

	err := reviewDocuments(t.Context(), reviewOptions{
		Docs:       []string{first, second},
		OutDir:     outDir,
		Format:     "markdown",
		ApproveAll: true,
	})
	require.NoError(t, err)

	revised, err := os.ReadFile(filepath.Join(outDir, "1-013300-revised.md"))
	require.NoError(t, err)
	assert.Equal(t, "Comply with IBC 2024.", string(revised))
	revised, err = os.ReadFile(filepath.Join(outDir, "2-013300-revised.md"))
	require.NoError(t, err)
	assert.Equal(t, "Comply with NFPA 70 2023.", string(revised))

	data, err := os.ReadFile(filepath.Join(outDir, "2-013300.suggestions.json"))
	require.NoError(t, err)
	var report documentReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "013300.txt", report.FileName)
	assert.NoFileExists(t, filepath.Join(outDir, "013300.suggestions.json"))
}

func TestOutputNames(t *testing.T) {
	names := outputNames([]review.Input{{FileName: "a.txt"}, {FileName: "b.txt"}, {FileName: "a.txt"}})
	assert.Equal(t, []string{"1-a.txt", "b.txt", "3-a.txt"}, names)
}

func TestReviewDocuments_AdvisorUnavailableKeepsRuleResults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	docPath := writeTestFile(t, dir, "a.txt", testDocument)
	outDir := filepath.Join(dir, "out")

	err := reviewDocuments(t.Context(), reviewOptions{Docs: []string{docPath}, OutDir: outDir, Format: "md", Advisor: true})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "a.suggestions.json"))
	require.NoError(t, err)
	var report documentReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Len(t, report.Suggestions, 4)
	assert.Contains(t, report.AdvisorNote, "no advisory service configured")
}

func TestReviewDocuments_Errors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, reviewDocuments(t.Context(), reviewOptions{Format: "md"}))
	assert.Error(t, reviewDocuments(t.Context(), reviewOptions{URLs: []string{"not-a-url"}, Format: "md"}))
	assert.Error(t, reviewDocuments(t.Context(), reviewOptions{Docs: []string{filepath.Join(dir, "missing.txt")}, Format: "md"}))

	docx := writeTestFile(t, dir, "spec.docx", "PK")
	assert.Error(t, reviewDocuments(t.Context(), reviewOptions{Docs: []string{docx}, Format: "md"}))

	doc := writeTestFile(t, dir, "a.txt", testDocument)
	assert.Error(t, reviewDocuments(t.Context(), reviewOptions{Docs: []string{doc}, Format: "rtf"}))
}

func TestReviewCommand_MissingInputFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "review")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one of the flags in the group [doc url] is required")
}
