package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Metadata describes an ingested document
type Metadata struct {
	FileName  string `json:"fileName"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the text
	Lines     int    `json:"lines"`
	Bytes     int    `json:"bytes"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(fileName string, format Format, text string) *Metadata {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return &Metadata{
		FileName:  fileName,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(text),
		Lines:     lines,
		Bytes:     len(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
