package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, li, h1, h2, h3, h4, h5, h6, div, tr, dt, dd, pre, blockquote, section, article, table"

// DefaultContentSelectors returns selectors that usually wrap the body of an
// exported specification page.
func DefaultContentSelectors() []string {
	return []string{
		"main",
		"article",
		".specification",
		".content",
		"#content",
	}
}

// ExtractHTMLText parses HTML and returns its main text with one line per
// block element. Navigation, scripts and styles are removed first.
func ExtractHTMLText(html string, contentSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .sidebar, .cookie-banner").Remove()

	if len(contentSelectors) == 0 {
		contentSelectors = DefaultContentSelectors()
	}
	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(main.Text()), nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(NormalizeLineEndings(text), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
