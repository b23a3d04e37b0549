package server

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/ingestion"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/server/middleware"
	"github.com/jonathan/spec-customizer/internal/types"
)

// ReviewResponse is a review session with its suggestions.
type ReviewResponse struct {
	ID          string             `json:"id"`
	FileName    string             `json:"fileName"`
	Empty       bool               `json:"empty"`
	Suggestions []types.Suggestion `json:"suggestions"`
	Summary     review.Summary     `json:"summary"`
	Advisor     map[string]any     `json:"advisor,omitempty"`
}

// RenderResponse is the highlighted line view of a review.
type RenderResponse struct {
	ID       string                `json:"id"`
	FileName string                `json:"fileName"`
	Empty    bool                  `json:"empty"`
	Lines    []review.RenderedLine `json:"lines"`
}

// RevisedResponse is the revised document as JSON.
type RevisedResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Text     string `json:"text"`
	Applied  int    `json:"applied"`
}

func reviewResponse(session *review.Session) ReviewResponse {
	doc := session.Document()
	return ReviewResponse{
		ID:          session.ID,
		FileName:    doc.FileName,
		Empty:       doc.Empty(),
		Suggestions: session.Suggestions(),
		Summary:     session.Summary(),
	}
}

// readDocument wraps the reviewed document, read from
// either a multipart upload (field "document") or a JSON AnalyzeRequest.
func readDocument(w http.ResponseWriter, r *http.Request) (*review.Document, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.AnalyzeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, validationError(err)
		}
		return review.DocumentFromJSON(req.FileName, req.Text), nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	file, header, err := r.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "document", Message: "a file upload is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	doc, err := ingestion.FromBytes(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, err
	}
	return review.NewDocument(doc.FileName, doc.Text), nil
}

// handleCreateReview analyzes a document and opens a review session. With
// ?advisor=true the advisory service contributes extra suggestions; its
// failure is reported alongside the rule-based result instead of failing it.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	analysis := s.analyzer.AnalyzeDocument(doc)
	suggestions := analysis.Suggestions

	var advisorNotice map[string]any
	if r.URL.Query().Get("advisor") == "true" {
		extra, err := s.advisorReviews.Suggest(r.Context(), analysis.Document)
		if err != nil {
			log.Printf("[review] advisor suggestions unavailable for %s: %v", doc.FileName, err)
			advisorNotice = errorBody(err)
		} else {
			suggestions = review.Merge(suggestions, extra)
			advisorNotice = map[string]any{"added": len(extra)}
		}
	}

	session := review.NewSession(analysis.Document, suggestions)
	if _, err := s.saveReview(r.Context(), session); err != nil {
		s.writeError(w, err)
		return
	}

	resp := reviewResponse(session)
	resp.Advisor = advisorNotice
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetReview returns the suggestions and summary of a review.
func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.reviewSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, reviewResponse(session))
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, types.StatusApproved)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, types.StatusRejected)
}

// handleDecision applies one approve or reject decision.
func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request, to types.SuggestionStatus) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.reviewSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	suggestionID := r.PathValue("sid")
	decided, err := s.decide(r.Context(), id, session, suggestionID, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if subject, err := middleware.GetSubject(r); err == nil {
		log.Printf("[review] %s %s %s by %s", id, suggestionID, to, subject)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"suggestion": decided})
}

// handleApproveAll approves every pending suggestion.
func (s *Server) handleApproveAll(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.reviewSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	approved, err := s.approveAll(r.Context(), id, session)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"approved": approved,
		"summary":  session.Summary(),
	})
}

// handleRender returns the highlighted line view.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.reviewSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	lines := session.Render()
	if lines == nil {
		lines = []review.RenderedLine{}
	}
	doc := session.Document()
	s.jsonResponse(w, http.StatusOK, RenderResponse{
		ID:       session.ID,
		FileName: doc.FileName,
		Empty:    doc.Empty(),
		Lines:    lines,
	})
}

// handleRevised returns the revised document as JSON, or as an export
// artifact when ?format= is given.
func (s *Server) handleRevised(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.reviewSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	fileName := session.Document().FileName
	text := session.Revised()

	if formatName := r.URL.Query().Get("format"); formatName != "" {
		format, err := export.ParseFormat(formatName)
		if err != nil {
			s.writeError(w, err)
			return
		}
		artifact, err := export.ExportRevision(fileName, text, format)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeArtifact(w, artifact)
		return
	}

	s.jsonResponse(w, http.StatusOK, RevisedResponse{
		ID:       session.ID,
		FileName: fileName,
		Text:     text,
		Applied:  len(session.Approved()),
	})
}
