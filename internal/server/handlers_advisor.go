package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/spec-customizer/internal/synthesis"
	"github.com/jonathan/spec-customizer/internal/types"
)

// AdvisorResponse is the advisory service reply.
type AdvisorResponse struct {
	Response string `json:"response"`
}

// handleAdvisor forwards a prompt and its context to the advisory service.
func (s *Server) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	var req types.AdvisorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	reply, err := s.advisor.Respond(r.Context(), req.Prompt, advisorContext(req.Context, req.Charter))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AdvisorResponse{Response: reply})
}

// advisorContext appends the present charter fields and completeness to the
// caller-supplied context.
func advisorContext(contextText string, charter *types.Charter) string {
	if charter == nil {
		return contextText
	}
	var sb strings.Builder
	if strings.TrimSpace(contextText) != "" {
		sb.WriteString(contextText)
		sb.WriteString("\n\n")
	}
	completeness, _ := synthesis.Completeness(charter)
	fmt.Fprintf(&sb, "Project charter (%d%% complete):\n", completeness)
	for _, f := range charter.Fields() {
		if f.Present() {
			fmt.Fprintf(&sb, "- %s: %s\n", f.Label, f.Joined())
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
