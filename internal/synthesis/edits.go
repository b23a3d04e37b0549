package synthesis

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/spec-customizer/internal/types"
)

// ErrUnknownArticle is returned when an edit targets an article the specification does not contain.
var ErrUnknownArticle = errors.New("unknown article")

// EditKey returns the override map key for an article.
func EditKey(sectionNumber, articleNumber string) string {
	return fmt.Sprintf("%s-%s", sectionNumber, articleNumber)
}

// Edits is the side map of user overrides for one generated specification.
// The specification itself is never mutated; Apply produces the displayed view.
type Edits struct {
	spec      *types.GeneratedSpecification
	mu        sync.RWMutex
	overrides map[string]string
}

// NewEdits creates an empty override map bound to a specification.
func NewEdits(spec *types.GeneratedSpecification) *Edits {
	return &Edits{
		spec:      spec,
		overrides: make(map[string]string),
	}
}

// Set records an override for an article.
func (e *Edits) Set(sectionNumber, articleNumber, content string) error {
	if e.spec.FindArticle(sectionNumber, articleNumber) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownArticle, EditKey(sectionNumber, articleNumber))
	}
	e.mu.Lock()
	e.overrides[EditKey(sectionNumber, articleNumber)] = content
	e.mu.Unlock()
	return nil
}

// Get returns the override for an article, if any.
func (e *Edits) Get(sectionNumber, articleNumber string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	content, ok := e.overrides[EditKey(sectionNumber, articleNumber)]
	return content, ok
}

// Clear removes the override for an article.
func (e *Edits) Clear(sectionNumber, articleNumber string) {
	e.mu.Lock()
	delete(e.overrides, EditKey(sectionNumber, articleNumber))
	e.mu.Unlock()
}

// Keys returns the override keys in sorted order.
func (e *Edits) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.overrides))
	for k := range e.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load replaces all overrides, e.g. when restoring from storage. Keys that do
// not name an article in the specification are ignored.
func (e *Edits) Load(overrides map[string]string) {
	valid := make(map[string]string, len(overrides))
	for _, section := range e.spec.Sections {
		for _, part := range section.Parts {
			for _, article := range part.Articles {
				key := EditKey(section.Number, article.Number)
				if content, ok := overrides[key]; ok {
					valid[key] = content
				}
			}
		}
	}
	e.mu.Lock()
	e.overrides = valid
	e.mu.Unlock()
}

// Provenance returns the displayed provenance of an article.
func (e *Edits) Provenance(sectionNumber, articleNumber string) types.Provenance {
	if _, ok := e.Get(sectionNumber, articleNumber); ok {
		return types.ProvenanceUser
	}
	if article := e.spec.FindArticle(sectionNumber, articleNumber); article != nil {
		return article.Provenance
	}
	return ""
}

// Apply returns a deep copy of the specification with overrides applied and
// overridden articles tagged with user provenance.
func (e *Edits) Apply() *types.GeneratedSpecification {
	view := e.spec.Clone()

	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range view.Sections {
		section := &view.Sections[i]
		for j := range section.Parts {
			part := &section.Parts[j]
			for k := range part.Articles {
				article := &part.Articles[k]
				if content, ok := e.overrides[EditKey(section.Number, article.Number)]; ok {
					article.Content = content
					article.Provenance = types.ProvenanceUser
				}
			}
		}
	}
	return view
}
