package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/synthesis"
	"github.com/jonathan/spec-customizer/internal/types"
)

// specEntry is a generated specification with its article overrides.
type specEntry struct {
	spec  *types.GeneratedSpecification
	edits *synthesis.Edits
}

// memoryStore caches specifications and review sessions. With a database
// configured it acts as a write-through cache; without one it is the only store.
type memoryStore struct {
	mu      sync.RWMutex
	specs   map[uuid.UUID]*specEntry
	reviews map[uuid.UUID]*review.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		specs:   make(map[uuid.UUID]*specEntry),
		reviews: make(map[uuid.UUID]*review.Session),
	}
}

func (m *memoryStore) putSpec(id uuid.UUID, e *specEntry) {
	m.mu.Lock()
	m.specs[id] = e
	m.mu.Unlock()
}

func (m *memoryStore) spec(id uuid.UUID) (*specEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.specs[id]
	return e, ok
}

func (m *memoryStore) putReview(id uuid.UUID, s *review.Session) {
	m.mu.Lock()
	m.reviews[id] = s
	m.mu.Unlock()
}

func (m *memoryStore) review(id uuid.UUID) (*review.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.reviews[id]
	return s, ok
}

// saveSpecification stores a new specification and returns its id.
func (s *Server) saveSpecification(ctx context.Context, spec *types.GeneratedSpecification) (uuid.UUID, error) {
	id := uuid.New()
	if s.db != nil {
		if err := s.db.SaveSpecification(ctx, id, spec); err != nil {
			return uuid.Nil, err
		}
	}
	s.store.putSpec(id, &specEntry{spec: spec, edits: synthesis.NewEdits(spec)})
	return id, nil
}

// specification loads a specification from the cache or the database.
func (s *Server) specification(ctx context.Context, id uuid.UUID) (*specEntry, error) {
	if e, ok := s.store.spec(id); ok {
		return e, nil
	}
	if s.db == nil {
		return nil, &ErrNotFound{Resource: "specification", ID: id.String()}
	}

	rec, err := s.db.GetSpecification(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrNotFound{Resource: "specification", ID: id.String()}
	}
	stored, err := s.db.ListArticleEdits(ctx, id)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]string, len(stored))
	for _, e := range stored {
		overrides[synthesis.EditKey(e.SectionNumber, e.ArticleNumber)] = e.Content
	}

	entry := &specEntry{spec: rec.Content, edits: synthesis.NewEdits(rec.Content)}
	entry.edits.Load(overrides)
	s.store.putSpec(id, entry)
	return entry, nil
}

// editArticle records an override for one article.
func (s *Server) editArticle(ctx context.Context, id uuid.UUID, sectionNumber, articleNumber, content string) error {
	entry, err := s.specification(ctx, id)
	if err != nil {
		return err
	}
	if entry.spec.FindArticle(sectionNumber, articleNumber) == nil {
		return fmt.Errorf("%w: %s", synthesis.ErrUnknownArticle, synthesis.EditKey(sectionNumber, articleNumber))
	}
	if s.db != nil {
		if err := s.db.SaveArticleEdit(ctx, id, sectionNumber, articleNumber, content); err != nil {
			return err
		}
	}
	return entry.edits.Set(sectionNumber, articleNumber, content)
}

// saveReview stores a new review session under its id.
func (s *Server) saveReview(ctx context.Context, session *review.Session) (uuid.UUID, error) {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		id = uuid.New()
		session.ID = id.String()
	}
	if s.db != nil {
		doc := session.Document()
		if err := s.db.CreateReview(ctx, id, doc.FileName, doc.Text(), session.Suggestions()); err != nil {
			return uuid.Nil, err
		}
	}
	s.store.putReview(id, session)
	return id, nil
}

// reviewSession loads a review session from the cache or the database.
func (s *Server) reviewSession(ctx context.Context, id uuid.UUID) (*review.Session, error) {
	if session, ok := s.store.review(id); ok {
		return session, nil
	}
	if s.db == nil {
		return nil, &ErrNotFound{Resource: "review", ID: id.String()}
	}

	rec, err := s.db.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrNotFound{Resource: "review", ID: id.String()}
	}
	session := review.NewSession(review.NewDocument(rec.FileName, rec.Text), rec.Suggestions)
	session.ID = id.String()
	s.store.putReview(id, session)
	return session, nil
}

// decide applies one decision. With a database the conditional update is the
// arbiter, so only one of several concurrent decisions succeeds.
func (s *Server) decide(ctx context.Context, id uuid.UUID, session *review.Session, suggestionID string, to types.SuggestionStatus) (types.Suggestion, error) {
	if s.db == nil {
		return session.Decide(suggestionID, to)
	}

	current, err := session.Suggestion(suggestionID)
	if err != nil {
		return types.Suggestion{}, err
	}
	if current.Decided() {
		return current, &review.DecisionError{ID: suggestionID, From: current.Status, To: to}
	}
	ok, err := s.db.UpdateSuggestionStatus(ctx, id, suggestionID, to)
	if err != nil {
		return types.Suggestion{}, err
	}
	if !ok {
		return current, &review.DecisionError{ID: suggestionID, To: to}
	}
	return session.Decide(suggestionID, to)
}

// approveAll approves every pending suggestion of a review.
func (s *Server) approveAll(ctx context.Context, id uuid.UUID, session *review.Session) ([]string, error) {
	if s.db == nil {
		return session.ApproveAll(), nil
	}
	ids, err := s.db.ApproveAllPending(ctx, id)
	if err != nil {
		return nil, err
	}
	session.ApproveAll()
	return ids, nil
}
