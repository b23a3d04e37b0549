package synthesis

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/spec-customizer/internal/templates"
	"github.com/jonathan/spec-customizer/internal/types"
)

// Sentinel replaces unresolved placeholders under the Sentinel policy.
const Sentinel = "[TO BE DETERMINED]"

// UnresolvedPolicy decides what an unresolved placeholder becomes in the output text.
type UnresolvedPolicy string

// Unresolved placeholder policies
const (
	KeepPlaceholder UnresolvedPolicy = "keep"
	UseSentinel     UnresolvedPolicy = "sentinel"
)

// Options configures a Synthesizer. The zero value uses the embedded library,
// the built-in token table and advisory rules, and keeps unresolved placeholders.
type Options struct {
	Library    *templates.Library
	Tokens     []TokenRule
	Rules      []AdvisoryRule
	Unresolved UnresolvedPolicy
	Now        func() time.Time
}

// Synthesizer produces specifications from charters. It holds no mutable
// state and is safe for concurrent use.
type Synthesizer struct {
	library    *templates.Library
	tokens     map[string]TokenRule
	rules      []AdvisoryRule
	unresolved UnresolvedPolicy
	now        func() time.Time
}

// New creates a Synthesizer from options.
func New(opts Options) *Synthesizer {
	s := &Synthesizer{
		library:    opts.Library,
		rules:      opts.Rules,
		unresolved: opts.Unresolved,
		now:        opts.Now,
	}
	if s.library == nil {
		s.library = templates.MustDefault()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = TokenTable()
	}
	s.tokens = tokenIndex(tokens)
	if s.rules == nil {
		s.rules = DefaultRules()
	}
	if s.unresolved == "" {
		s.unresolved = KeepPlaceholder
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Synthesize runs synthesis with default options.
func Synthesize(charter *types.Charter, charterSource string) *types.GeneratedSpecification {
	return New(Options{}).Synthesize(charter, charterSource)
}

// tipLog accumulates tips, keeping one tip per id.
type tipLog struct {
	tips []types.AITip
	seen map[string]bool
}

func (l *tipLog) add(tip types.AITip) {
	if l.seen[tip.ID] {
		return
	}
	l.seen[tip.ID] = true
	l.tips = append(l.tips, tip)
}

// Synthesize builds the full specification for a charter. The charter is never mutated.
func (s *Synthesizer) Synthesize(charter *types.Charter, charterSource string) *types.GeneratedSpecification {
	fields := charter.Fields()
	byName := make(map[string]types.CharterField, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	log := &tipLog{tips: []types.AITip{}, seen: make(map[string]bool)}
	sectionTemplates := s.library.Sections()
	sections := make([]types.GeneratedSection, 0, len(sectionTemplates))

	for _, tmpl := range sectionTemplates {
		section := types.GeneratedSection{
			Number: tmpl.Number,
			Title:  tmpl.Title,
			Parts:  make([]types.GeneratedPart, 0, len(tmpl.Parts)),
		}
		for _, partTmpl := range tmpl.Parts {
			part := types.GeneratedPart{
				Number:   partTmpl.Number,
				Title:    partTmpl.Title,
				Articles: make([]types.GeneratedArticle, 0, len(partTmpl.Articles)),
			}
			for _, articleTmpl := range partTmpl.Articles {
				part.Articles = append(part.Articles, s.generateArticle(tmpl.Number, articleTmpl, byName, log))
			}
			section.Parts = append(section.Parts, part)
		}
		sections = append(sections, section)
	}

	for _, rule := range s.rules {
		if _, ok := s.library.Section(rule.Section); !ok {
			continue
		}
		for _, advice := range rule.Evaluate(charterOrEmpty(charter)) {
			slug := rule.Name
			if advice.Key != "" {
				slug += "-" + advice.Key
			}
			log.add(types.AITip{
				ID:            tipID(rule.Section, rule.Kind, slug),
				SectionNumber: rule.Section,
				Kind:          rule.Kind,
				Message:       advice.Message,
				Action:        advice.Action,
			})
		}
	}

	completeness, missing := Completeness(charter)
	return &types.GeneratedSpecification{
		Sections: sections,
		Tips:     log.tips,
		Metadata: types.SpecificationMetadata{
			GeneratedAt:   s.now(),
			CharterSource: charterSource,
			Completeness:  completeness,
			MissingFields: missing,
		},
	}
}

// generateArticle substitutes every placeholder in one article in a single pass.
func (s *Synthesizer) generateArticle(sectionNumber string, tmpl types.ArticleTemplate, byName map[string]types.CharterField, log *tipLog) types.GeneratedArticle {
	article := types.GeneratedArticle{
		Number:          tmpl.Number,
		Title:           tmpl.Title,
		Content:         tmpl.Content,
		Provenance:      types.ProvenanceTemplate,
		SuggestedValues: append([]string(nil), tmpl.SuggestedValues...),
	}

	tokens := FindPlaceholders(tmpl.Content)
	if len(tokens) == 0 {
		return article
	}

	values := make(map[string]string, len(tokens))
	allResolved := true
	var sourceFields []string

	for _, token := range tokens {
		rule, known := s.tokens[token]
		if !known {
			allResolved = false
			label := HumanizeToken(token)
			log.add(missingTip(sectionNumber, slugify(token), label))
			continue
		}
		value, used, ok := rule.resolve(byName)
		if !ok {
			allResolved = false
			log.add(missingTip(sectionNumber, slugify(strings.Join(rule.Fields, "-")), rule.Label))
			continue
		}
		if placeholderPattern.MatchString(value) {
			allResolved = false
			log.add(placeholderValueTip(sectionNumber, slugify(strings.Join(rule.Fields, "-")), rule.Label))
			continue
		}
		values[token] = value
		sourceFields = appendUnique(sourceFields, used...)
	}

	article.Content = placeholderPattern.ReplaceAllStringFunc(tmpl.Content, func(token string) string {
		if v, ok := values[token]; ok {
			return v
		}
		if s.unresolved == UseSentinel {
			return Sentinel
		}
		return token
	})

	if allResolved {
		article.Provenance = types.ProvenanceCharter
		article.CharterFields = sourceFields
		if len(sourceFields) > 0 {
			article.CharterField = sourceFields[0]
		}
	}
	return article
}

// Completeness returns the rounded percentage of charter fields holding a value
// and the names of absent fields, computed over the whole charter.
func Completeness(charter *types.Charter) (int, []string) {
	fields := charter.Fields()
	present := 0
	missing := make([]string, 0)
	for _, f := range fields {
		if f.Present() {
			present++
		} else {
			missing = append(missing, f.Name)
		}
	}
	if len(fields) == 0 {
		return 0, missing
	}
	return int(math.Round(float64(present) / float64(len(fields)) * 100)), missing
}

func missingTip(sectionNumber, slug, label string) types.AITip {
	return types.AITip{
		ID:            tipID(sectionNumber, types.TipMissing, slug),
		SectionNumber: sectionNumber,
		Kind:          types.TipMissing,
		Message:       fmt.Sprintf("%s not found in the project charter. Add it to complete Section %s.", label, sectionNumber),
		Action:        "Add to Charter",
	}
}

// placeholderValueTip flags a charter value that is present but still holds
// a bracketed placeholder of its own.
func placeholderValueTip(sectionNumber, slug, label string) types.AITip {
	return types.AITip{
		ID:            tipID(sectionNumber, types.TipWarning, slug+"-placeholder"),
		SectionNumber: sectionNumber,
		Kind:          types.TipWarning,
		Message:       fmt.Sprintf("%s value contains an unresolved placeholder. Replace it with project data to complete Section %s.", label, sectionNumber),
		Action:        "Edit Charter",
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func tipID(sectionNumber string, kind types.TipKind, slug string) string {
	return fmt.Sprintf("%s-%s-%s", sectionNumber, kind, slugify(slug))
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, d := range dst {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

func charterOrEmpty(c *types.Charter) *types.Charter {
	if c == nil {
		return &types.Charter{}
	}
	return c
}
