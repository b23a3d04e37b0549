package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is the detected source format of an uploaded document.
type Format string

// Supported formats
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// MaxDocumentBytes bounds uploaded document size.
const MaxDocumentBytes = 5 << 20

// Document is an ingested document ready for review.
type Document struct {
	FileName string
	Text     string
	Metadata *Metadata
}

// DetectFormat chooses a format from the file extension or content type.
// Binary office formats are rejected.
func DetectFormat(fileName, contentType string) (Format, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "text/html"):
		return FormatHTML, true
	case strings.HasPrefix(ct, "text/markdown"):
		return FormatMarkdown, true
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".html", ".htm":
		return FormatHTML, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".txt", ".text", ".spec", "":
		return FormatText, true
	case ".pdf", ".doc", ".docx", ".rtf", ".odt":
		return "", false
	}
	if ct == "" || strings.HasPrefix(ct, "text/") {
		return FormatText, true
	}
	return "", false
}

// FromBytes converts uploaded bytes to review text. Text and markdown are
// passed through with line endings normalized; HTML is reduced to its text.
func FromBytes(fileName, contentType string, data []byte) (*Document, error) {
	if len(data) > MaxDocumentBytes {
		return nil, &Error{Path: fileName, Message: "document exceeds size limit"}
	}
	format, ok := DetectFormat(fileName, contentType)
	if !ok {
		return nil, &Error{Path: fileName, Message: "unsupported document format; extract text before uploading"}
	}
	if !utf8.Valid(data) {
		return nil, &Error{Path: fileName, Message: "document is not valid UTF-8 text"}
	}

	text := NormalizeLineEndings(string(data))
	if format == FormatHTML {
		extracted, err := ExtractHTMLText(text)
		if err != nil {
			return nil, &Error{Path: fileName, Message: "failed to extract HTML text", Cause: err}
		}
		text = extracted
	}

	name := filepath.Base(fileName)
	return &Document{
		FileName: name,
		Text:     text,
		Metadata: NewMetadata(name, format, text),
	}, nil
}

// LoadFile reads and converts a document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	return FromBytes(path, "", data)
}
