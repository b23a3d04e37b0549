// Package review turns document text into line-anchored suggestions, tracks
// their decisions, and materializes revised documents.
package review

import (
	"encoding/json"
	"strings"
)

// Document is an immutable reviewed text split into 1-indexed lines.
type Document struct {
	FileName string
	text     string
	lines    []string
}

// NewDocument wraps raw text. Lines are split on "\n" only, so joining them
// with "\n" reproduces the original text exactly.
func NewDocument(fileName, text string) *Document {
	doc := &Document{FileName: fileName, text: text}
	if text != "" {
		doc.lines = strings.Split(text, "\n")
	}
	return doc
}

// DocumentFromJSON builds a document from a raw JSON value. Null and
// non-string values produce an empty document.
func DocumentFromJSON(fileName string, raw json.RawMessage) *Document {
	var text string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &text); err != nil {
			text = ""
		}
	}
	return NewDocument(fileName, text)
}

// Text returns the original text.
func (d *Document) Text() string {
	return d.text
}

// Empty reports whether the document has no content beyond whitespace.
func (d *Document) Empty() bool {
	return strings.TrimSpace(d.text) == ""
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line n (1-indexed).
func (d *Document) Line(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}
