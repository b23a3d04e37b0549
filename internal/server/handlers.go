package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/ingestion"
)

// maxBodyBytes bounds JSON request bodies; documents are the largest payload.
const maxBodyBytes = ingestion.MaxDocumentBytes + 64<<10

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// validationError converts validator output to an *ErrValidation naming the first field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: lowerFirst(fe.Field()), Message: fmt.Sprintf("failed %q validation", fe.Tag())}
	}
	return &ErrValidation{Message: err.Error()}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// writeArtifact sends an export artifact as a download.
func writeArtifact(w http.ResponseWriter, a *export.Artifact) {
	w.Header().Set("Content-Type", a.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Content); err != nil {
		log.Printf("Error writing artifact %s: %v", a.FileName, err)
	}
}

// handleFormats lists the export formats.
func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"formats": export.Formats()})
}

func logInternal(err error) {
	log.Printf("Internal error: %v", err)
}
