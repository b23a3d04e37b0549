// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintSpecification outputs the section outline, completeness and missing charter fields.
func (p *Printer) PrintSpecification(spec *types.GeneratedSpecification) {
	if spec == nil {
		return
	}

	var sb strings.Builder
	if spec.Metadata.CharterSource != "" {
		sb.WriteString(fmt.Sprintf("Charter:      %s\n", spec.Metadata.CharterSource))
	}
	sb.WriteString(fmt.Sprintf("Completeness: %d%%\n", spec.Metadata.Completeness))
	sb.WriteString("\n")

	for _, section := range spec.Sections {
		articles, fromCharter := 0, 0
		for _, part := range section.Parts {
			for _, a := range part.Articles {
				articles++
				if a.Provenance == types.ProvenanceCharter {
					fromCharter++
				}
			}
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", section.Number, section.Title))
		sb.WriteString(fmt.Sprintf("        %d articles, %d from charter\n", articles, fromCharter))
	}

	if missing := spec.Metadata.MissingFields; len(missing) > 0 {
		sb.WriteString("\nMissing charter fields:\n")
		count := min(len(missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", missing[i]))
		}
		if len(missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(missing)-maxItemsToShow))
		}
	}

	p.printBox("GENERATED SPECIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTips outputs the advisory tips attached to a specification.
func (p *Printer) PrintTips(tips []types.AITip) {
	if len(tips) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tips:\n\n", len(tips)))

	count := min(len(tips), maxItemsToShow)
	for i := 0; i < count; i++ {
		tip := tips[i]
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", tip.SectionNumber, tip.Kind))
		sb.WriteString(fmt.Sprintf("  %s\n", tip.Message))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(tips) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more tips", len(tips)-maxItemsToShow))
	}

	p.printBox("AI TIPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the review summary and the first suggestions.
func (p *Printer) PrintSuggestions(summary review.Summary, suggestions []types.Suggestion) {
	if summary.Empty {
		p.printBox("REVIEW: "+summary.FileName, "Document is empty; nothing to review.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Lines:       %d (%d non-empty)\n", summary.TotalLines, summary.NonEmptyLines))
	sb.WriteString(fmt.Sprintf("Suggestions: %d\n", summary.SuggestionCount))
	if len(suggestions) > 0 {
		sb.WriteString("\n")
	}

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		sb.WriteString(fmt.Sprintf("%s  L%d  %s (%s)\n", s.ID, s.Line(), s.Title, s.Priority))
		if s.Original() != "" {
			sb.WriteString(fmt.Sprintf("    %q → %q\n", s.Original(), s.SuggestedText))
		}
	}
	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(suggestions)-maxItemsToShow))
	}

	p.printBox("REVIEW: "+summary.FileName, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDecisions outputs the status counts after a review pass.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDecisions(summary review.Summary) {
	fmt.Fprintf(p.out, "%s: %d approved, %d rejected, %d pending\n",
		summary.FileName,
		summary.ByStatus[types.StatusApproved],
		summary.ByStatus[types.StatusRejected],
		summary.ByStatus[types.StatusPending])
}
