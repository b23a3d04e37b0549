package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/yuin/goldmark"
)

// DefaultTitle heads exported specifications.
const DefaultTitle = "Division 01 -- General Requirements"

type specData struct {
	Title string
	Spec  *types.GeneratedSpecification
}

type revisionData struct {
	Title string
	Lines []string
}

// Revision is the JSON handoff of a revised document.
type Revision struct {
	FileName string   `json:"fileName"`
	Text     string   `json:"text"`
	Lines    []string `json:"lines"`
}

// ExportSpecification renders a specification in the requested format.
func ExportSpecification(spec *types.GeneratedSpecification, format Format) (*Artifact, error) {
	info, ok := Info(format)
	if !ok {
		return nil, &FormatError{Format: string(format)}
	}
	if spec == nil {
		return nil, &RenderError{Message: "no specification to export"}
	}

	var (
		content []byte
		err     error
	)
	switch format {
	case FormatJSON:
		content, err = json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return nil, &RenderError{Message: "failed to encode specification", Cause: err}
		}
	case FormatLaTeX:
		content, err = renderLaTeX("specification", specificationTemplate, specData{Title: DefaultTitle, Spec: spec})
	case FormatMarkdown:
		content = []byte(SpecificationMarkdown(spec))
	case FormatHTML:
		content, err = markdownToHTML(DefaultTitle, SpecificationMarkdown(spec))
	}
	if err != nil {
		return nil, err
	}

	base := spec.Metadata.CharterSource
	if base == "" {
		base = "specification"
	} else {
		base = strings.TrimSuffix(base, extOf(base)) + "-specification"
	}
	return &Artifact{FileName: artifactName(base, info), MIMEType: info.MIMEType, Content: content}, nil
}

// ExportRevision renders a revised document in the requested format.
func ExportRevision(fileName, text string, format Format) (*Artifact, error) {
	info, ok := Info(format)
	if !ok {
		return nil, &FormatError{Format: string(format)}
	}
	title := "Revised " + fileName
	lines := strings.Split(text, "\n")

	var (
		content []byte
		err     error
	)
	switch format {
	case FormatJSON:
		content, err = json.MarshalIndent(Revision{FileName: fileName, Text: text, Lines: lines}, "", "  ")
		if err != nil {
			return nil, &RenderError{Message: "failed to encode revision", Cause: err}
		}
	case FormatLaTeX:
		content, err = renderLaTeX("revision", revisionTemplate, revisionData{Title: title, Lines: lines})
	case FormatMarkdown:
		content = []byte(text)
	case FormatHTML:
		var body bytes.Buffer
		body.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n<pre>")
		body.WriteString(html.EscapeString(text))
		body.WriteString("</pre>\n")
		content = wrapHTML(title, body.Bytes())
	}
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(fileName, extOf(fileName)) + "-revised"
	return &Artifact{FileName: artifactName(base, info), MIMEType: info.MIMEType, Content: content}, nil
}

// SpecificationMarkdown renders the specification tree as markdown.
func SpecificationMarkdown(spec *types.GeneratedSpecification) string {
	var sb strings.Builder
	sb.WriteString("# " + DefaultTitle + "\n\n")
	if spec.Metadata.CharterSource != "" {
		fmt.Fprintf(&sb, "Charter: %s  \n", spec.Metadata.CharterSource)
	}
	fmt.Fprintf(&sb, "Completeness: %d%%\n\n", spec.Metadata.Completeness)

	for _, section := range spec.Sections {
		fmt.Fprintf(&sb, "## SECTION %s - %s\n\n", section.Number, strings.ToUpper(section.Title))
		for _, part := range section.Parts {
			fmt.Fprintf(&sb, "### PART %s - %s\n\n", part.Number, strings.ToUpper(part.Title))
			for _, article := range part.Articles {
				fmt.Fprintf(&sb, "**%s %s**\n\n%s\n\n", article.Number, article.Title, article.Content)
			}
		}
		fmt.Fprintf(&sb, "END OF SECTION %s\n\n", section.Number)
	}

	if len(spec.Tips) > 0 {
		sb.WriteString("## Advisory Tips\n\n")
		for _, tip := range spec.Tips {
			fmt.Fprintf(&sb, "- **%s** (%s): %s", tip.Kind, tip.SectionNumber, tip.Message)
			if tip.Action != "" {
				fmt.Fprintf(&sb, " _%s_", tip.Action)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func markdownToHTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return nil, &RenderError{Message: "failed to convert markdown", Cause: err}
	}
	return wrapHTML(title, body.Bytes()), nil
}

func wrapHTML(title string, body []byte) []byte {
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	out.WriteString("<title>" + html.EscapeString(title) + "</title>\n</head>\n<body>\n")
	out.Write(body)
	out.WriteString("</body>\n</html>\n")
	return out.Bytes()
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 && !strings.ContainsAny(name[i:], "/\\") {
		return name[i:]
	}
	return ""
}
