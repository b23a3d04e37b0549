package export

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed templates/specification.tex.tmpl
var specificationTemplate string

//go:embed templates/revision.tex.tmpl
var revisionTemplate string

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// parseTemplate parses a LaTeX template with the escape helper.
func parseTemplate(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"blank":  func(s string) bool { return strings.TrimSpace(s) == "" },
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template " + name, Cause: err}
	}
	return tmpl, nil
}

func renderLaTeX(name, content string, data any) ([]byte, error) {
	tmpl, err := parseTemplate(name, content)
	if err != nil {
		return nil, err
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, &TemplateError{Message: "failed to execute template " + name, Cause: err}
	}
	return []byte(out.String()), nil
}
