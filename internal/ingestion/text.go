// Package ingestion turns uploaded files into the raw text the review engine
// analyzes and loads project charters.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// NormalizeLineEndings converts CRLF and CR line endings to LF.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// CleanText normalizes extracted text while preserving line structure:
// trailing whitespace is dropped, inner runs of spaces collapse, and at most
// one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(NormalizeLineEndings(content), "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line, keeping its leading indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	indent := len(line) - len(trimmed)
	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
}
