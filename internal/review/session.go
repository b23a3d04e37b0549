package review

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/spec-customizer/internal/types"
)

// Session holds the decision state for one reviewed document. Decisions
// only move pending suggestions to approved or rejected; decided suggestions
// never change again.
type Session struct {
	ID  string
	doc *Document

	mu          sync.RWMutex
	suggestions []types.Suggestion
	index       map[string]int
}

// NewSession starts a review over doc. Suggestions are copied; a blank status
// is treated as pending and anchors are re-resolved against doc.
func NewSession(doc *Document, suggestions []types.Suggestion) *Session {
	owned := cloneSuggestions(suggestions)
	if owned == nil {
		owned = []types.Suggestion{}
	}
	index := make(map[string]int, len(owned))
	for i := range owned {
		if owned[i].Status == "" {
			owned[i].Status = types.StatusPending
		}
		if _, dup := index[owned[i].ID]; !dup {
			index[owned[i].ID] = i
		}
	}
	markRenderable(doc, owned)
	return &Session{
		ID:          uuid.New().String(),
		doc:         doc,
		suggestions: owned,
		index:       index,
	}
}

// Document returns the reviewed document.
func (s *Session) Document() *Document {
	return s.doc
}

// Suggestions returns a snapshot of all suggestions in declaration order.
func (s *Session) Suggestions() []types.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSuggestions(s.suggestions)
}

// Suggestion returns a snapshot of one suggestion.
func (s *Session) Suggestion(id string) (types.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return types.Suggestion{}, fmt.Errorf("%w: %s", ErrSuggestionNotFound, id)
	}
	return cloneSuggestion(s.suggestions[i]), nil
}

// Approve moves a pending suggestion to approved.
func (s *Session) Approve(id string) (types.Suggestion, error) {
	return s.Decide(id, types.StatusApproved)
}

// Reject moves a pending suggestion to rejected.
func (s *Session) Reject(id string) (types.Suggestion, error) {
	return s.Decide(id, types.StatusRejected)
}

// Decide applies a decision. Deciding an already decided suggestion, or
// moving back to pending, returns a *DecisionError and leaves state unchanged.
func (s *Session) Decide(id string, to types.SuggestionStatus) (types.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return types.Suggestion{}, fmt.Errorf("%w: %s", ErrSuggestionNotFound, id)
	}
	current := &s.suggestions[i]
	if current.Status != types.StatusPending || (to != types.StatusApproved && to != types.StatusRejected) {
		return cloneSuggestion(*current), &DecisionError{ID: id, From: current.Status, To: to}
	}
	current.Status = to
	return cloneSuggestion(*current), nil
}

// ApproveAll approves every pending suggestion and returns their ids.
// Rejected suggestions stay rejected.
func (s *Session) ApproveAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	approved := []string{}
	for i := range s.suggestions {
		if s.suggestions[i].Status == types.StatusPending {
			s.suggestions[i].Status = types.StatusApproved
			approved = append(approved, s.suggestions[i].ID)
		}
	}
	return approved
}

// Approved returns the approved suggestions in declaration order.
func (s *Session) Approved() []types.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Suggestion
	for _, sug := range s.suggestions {
		if sug.Status == types.StatusApproved {
			out = append(out, cloneSuggestion(sug))
		}
	}
	return out
}

// Render returns the per-line highlighted view of the current state.
func (s *Session) Render() []RenderedLine {
	return RenderLines(s.doc, s.Suggestions())
}

// Revised returns the document with every approved suggestion applied.
func (s *Session) Revised() string {
	return BuildRevisedDocument(s.doc.Text(), s.Approved())
}

// Summary counts the current suggestions.
func (s *Session) Summary() Summary {
	return Summarize(s.doc, s.Suggestions())
}

// Workspace owns the single active review. Opening a new document replaces
// the previous session and its decisions.
type Workspace struct {
	analyzer *Analyzer

	mu      sync.Mutex
	current *Session
}

// NewWorkspace creates a workspace that analyzes with a.
func NewWorkspace(a *Analyzer) *Workspace {
	if a == nil {
		a = NewAnalyzer(Options{})
	}
	return &Workspace{analyzer: a}
}

// Open analyzes text and makes it the active session.
func (w *Workspace) Open(fileName, text string) *Session {
	analysis := w.analyzer.Analyze(fileName, text)
	return w.Adopt(analysis.Document, analysis.Suggestions)
}

// Adopt makes an already analyzed document the active session, e.g. after
// batch analysis or with advisor suggestions merged in.
func (w *Workspace) Adopt(doc *Document, suggestions []types.Suggestion) *Session {
	session := NewSession(doc, suggestions)
	w.mu.Lock()
	w.current = session
	w.mu.Unlock()
	return session
}

// Current returns the active session, or nil.
func (w *Workspace) Current() *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close discards the active session.
func (w *Workspace) Close() {
	w.mu.Lock()
	w.current = nil
	w.mu.Unlock()
}
