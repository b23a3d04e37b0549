// Package templates provides the fixed Division 01 section-template library.
package templates

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jonathan/spec-customizer/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed library.yaml
var defaultLibraryYAML []byte

// Library is an ordered, read-only collection of section templates.
type Library struct {
	sections []types.SectionTemplate
	index    map[string]int
}

type libraryFile struct {
	Sections []types.SectionTemplate `yaml:"sections"`
}

var loadDefault = sync.OnceValues(func() (*Library, error) {
	return Parse(defaultLibraryYAML)
})

// Default returns the embedded Division 01 library.
func Default() (*Library, error) {
	return loadDefault()
}

// MustDefault returns the embedded library and panics if it cannot be parsed.
func MustDefault() *Library {
	lib, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded template library is invalid: %v", err))
	}
	return lib
}

// Parse builds a library from YAML content.
func Parse(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Message: "failed to parse template library YAML", Cause: err}
	}
	return New(file.Sections)
}

// New builds a library from section templates, preserving their order.
func New(sections []types.SectionTemplate) (*Library, error) {
	lib := &Library{
		sections: make([]types.SectionTemplate, 0, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	for _, section := range sections {
		if section.Number == "" {
			return nil, &LoadError{Message: "section template without a number"}
		}
		if _, dup := lib.index[section.Number]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate section template %s", section.Number)}
		}
		seen := make(map[string]bool)
		for _, part := range section.Parts {
			for _, article := range part.Articles {
				if seen[article.Number] {
					return nil, &LoadError{Message: fmt.Sprintf("duplicate article %s in section %s", article.Number, section.Number)}
				}
				seen[article.Number] = true
			}
		}
		lib.index[section.Number] = len(lib.sections)
		lib.sections = append(lib.sections, cloneSection(section))
	}
	return lib, nil
}

// Sections returns a copy of all section templates in library order.
func (l *Library) Sections() []types.SectionTemplate {
	out := make([]types.SectionTemplate, len(l.sections))
	for i, section := range l.sections {
		out[i] = cloneSection(section)
	}
	return out
}

// Section returns a copy of one section template.
func (l *Library) Section(number string) (types.SectionTemplate, bool) {
	i, ok := l.index[number]
	if !ok {
		return types.SectionTemplate{}, false
	}
	return cloneSection(l.sections[i]), true
}

// Numbers returns the section numbers in library order.
func (l *Library) Numbers() []string {
	numbers := make([]string, len(l.sections))
	for i, section := range l.sections {
		numbers[i] = section.Number
	}
	return numbers
}

// Len returns the number of sections.
func (l *Library) Len() int {
	return len(l.sections)
}

func cloneSection(section types.SectionTemplate) types.SectionTemplate {
	out := types.SectionTemplate{
		Number: section.Number,
		Title:  section.Title,
		Parts:  make([]types.PartTemplate, len(section.Parts)),
	}
	for i, part := range section.Parts {
		articles := make([]types.ArticleTemplate, len(part.Articles))
		for j, article := range part.Articles {
			article.SuggestedValues = append([]string(nil), article.SuggestedValues...)
			articles[j] = article
		}
		out.Parts[i] = types.PartTemplate{Number: part.Number, Title: part.Title, Articles: articles}
	}
	return out
}
