// Package export hands generated specifications and revised documents to
// downstream document producers in a requested format.
package export

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Format names an export format.
type Format string

// Supported formats
const (
	FormatJSON     Format = "json"
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// FormatInfo describes an export format.
type FormatInfo struct {
	Format      Format `json:"format"`
	MIMEType    string `json:"mimeType"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
}

var formats = []FormatInfo{
	{FormatJSON, "application/json", ".json", "Structured document tree for word-processor generators"},
	{FormatLaTeX, "application/x-latex", ".tex", "LaTeX source for portable-document output"},
	{FormatMarkdown, "text/markdown; charset=utf-8", ".md", "Markdown text"},
	{FormatHTML, "text/html; charset=utf-8", ".html", "Standalone HTML page"},
}

var aliases = map[string]Format{
	"json":     FormatJSON,
	"docx":     FormatJSON,
	"latex":    FormatLaTeX,
	"tex":      FormatLaTeX,
	"pdf":      FormatLaTeX,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
	"htm":      FormatHTML,
}

// Formats returns every supported format in display order.
func Formats() []FormatInfo {
	return append([]FormatInfo(nil), formats...)
}

// ParseFormat resolves a format name or alias. "pdf" and "docx" map to the
// source formats their producers consume. Empty selects markdown.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return FormatMarkdown, nil
	}
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return "", &FormatError{Format: name}
}

// Info returns the description of a format.
func Info(f Format) (FormatInfo, bool) {
	for _, info := range formats {
		if info.Format == f {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// Artifact is a downloadable export.
type Artifact struct {
	FileName string `json:"fileName"`
	MIMEType string `json:"mimeType"`
	Content  []byte `json:"content"`
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// artifactName builds a safe file name from base plus the format extension.
func artifactName(base string, info FormatInfo) string {
	base = filepath.Base(base)
	base = strings.Trim(unsafeName.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "document"
	}
	return base + info.Extension
}
