package server

import (
	"net/http"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/types"
)

// SpecificationResponse is the displayed view of a generated specification.
type SpecificationResponse struct {
	ID            string                        `json:"id"`
	Specification *types.GeneratedSpecification `json:"specification"`
	Edits         []string                      `json:"edits"`
}

// ArticleEditResponse confirms an article override.
type ArticleEditResponse struct {
	ID            string           `json:"id"`
	SectionNumber string           `json:"sectionNumber"`
	ArticleNumber string           `json:"articleNumber"`
	Content       string           `json:"content"`
	Provenance    types.Provenance `json:"provenance"`
}

// handleCreateSpecification synthesizes a specification from a charter.
func (s *Server) handleCreateSpecification(w http.ResponseWriter, r *http.Request) {
	var req types.SynthesizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	spec := s.synthesizer.Synthesize(&req.Charter, req.CharterSource)
	id, err := s.saveSpecification(r.Context(), spec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, SpecificationResponse{
		ID:            id.String(),
		Specification: spec,
		Edits:         []string{},
	})
}

// handleGetSpecification returns the specification with overrides applied.
func (s *Server) handleGetSpecification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry, err := s.specification(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SpecificationResponse{
		ID:            id.String(),
		Specification: entry.edits.Apply(),
		Edits:         entry.edits.Keys(),
	})
}

// handleEditArticle overrides the displayed text of one article.
func (s *Server) handleEditArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req types.ArticleEditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	section, article := r.PathValue("section"), r.PathValue("article")
	if err := s.editArticle(r.Context(), id, section, article, req.Content); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ArticleEditResponse{
		ID:            id.String(),
		SectionNumber: section,
		ArticleNumber: article,
		Content:       req.Content,
		Provenance:    types.ProvenanceUser,
	})
}

// handleExportSpecification downloads the displayed specification.
func (s *Server) handleExportSpecification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry, err := s.specification(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := export.ExportSpecification(entry.edits.Apply(), format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeArtifact(w, artifact)
}
