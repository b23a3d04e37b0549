package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/ingestion"
	"github.com/jonathan/spec-customizer/internal/observability"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review specification documents and suggest revisions",
	Long: `Analyzes one or more documents (text, markdown or HTML), read from disk with --doc or fetched with --url, for outdated code editions, superseded standards, renamed manufacturers and open-ended substitution language.

Documents are analyzed in parallel. With --approve-all every suggestion is applied and the revised documents are written to --out-dir.`,
	RunE: runReview,
}

var (
	reviewConfigPath  string
	reviewDocs        []string
	reviewURLs        []string
	reviewOutDir      string
	reviewFormat      string
	reviewApproveAll  bool
	reviewAdvisor     bool
	reviewProvider    string
	reviewAPIKey      string
	reviewConcurrency int
	reviewVerbose     bool
)

func init() {
	reviewCmd.Flags().StringVar(&reviewConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	reviewCmd.Flags().StringArrayVarP(&reviewDocs, "doc", "d", nil, "Document to review (repeatable)")
	reviewCmd.Flags().StringArrayVar(&reviewURLs, "url", nil, "URL of a published document to review (repeatable)")
	reviewCmd.Flags().StringVarP(&reviewOutDir, "out-dir", "o", "", "Directory for suggestion and revised-document files")
	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", "markdown", "Format of revised documents (json, latex, markdown, html)")
	reviewCmd.Flags().BoolVar(&reviewApproveAll, "approve-all", false, "Approve every suggestion and write revised documents")
	reviewCmd.Flags().BoolVar(&reviewAdvisor, "advisor", false, "Ask the advisory service for additional suggestions")
	reviewCmd.Flags().StringVar(&reviewProvider, "provider", "", "Advisory provider: gemini or openai")
	reviewCmd.Flags().StringVar(&reviewAPIKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	reviewCmd.Flags().IntVar(&reviewConcurrency, "concurrency", 4, "Maximum documents analyzed at once")
	reviewCmd.Flags().BoolVarP(&reviewVerbose, "verbose", "v", false, "Print suggestions for each document")

	reviewCmd.MarkFlagsOneRequired("doc", "url")
	rootCmd.AddCommand(reviewCmd)
}

type reviewOptions struct {
	Docs        []string
	URLs        []string
	OutDir      string
	Format      string
	ApproveAll  bool
	Advisor     bool
	Provider    string
	APIKey      string
	Concurrency int
	Verbose     bool
}

// documentReport is the per-document file written to the output directory.
type documentReport struct {
	FileName    string             `json:"fileName"`
	Summary     review.Summary     `json:"summary"`
	Suggestions []types.Suggestion `json:"suggestions"`
	AdvisorNote string             `json:"advisorNote,omitempty"`
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile(reviewConfigPath)
	if err != nil {
		return err
	}

	opts := reviewOptions{
		Docs:        reviewDocs,
		URLs:        reviewURLs,
		OutDir:      stringFlag(cmd, "out-dir", reviewOutDir, cfg.OutDir),
		Format:      stringFlag(cmd, "format", reviewFormat, cfg.Format),
		ApproveAll:  reviewApproveAll,
		Advisor:     reviewAdvisor,
		Provider:    stringFlag(cmd, "provider", reviewProvider, cfg.Provider),
		APIKey:      stringFlag(cmd, "api-key", reviewAPIKey, cfg.APIKey),
		Concurrency: reviewConcurrency,
		Verbose:     reviewVerbose || cfg.Verbose,
	}
	return reviewDocuments(cmd.Context(), opts)
}

func reviewDocuments(ctx context.Context, opts reviewOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(opts.Docs) == 0 && len(opts.URLs) == 0 {
		return fmt.Errorf("at least one --doc or --url is required")
	}
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	inputs := make([]review.Input, 0, len(opts.Docs)+len(opts.URLs))
	for _, path := range opts.Docs {
		doc, err := ingestion.LoadFile(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, review.Input{FileName: doc.FileName, Text: doc.Text})
	}
	for _, rawURL := range opts.URLs {
		doc, err := ingestion.FetchURL(ctx, rawURL, nil)
		if err != nil {
			return err
		}
		inputs = append(inputs, review.Input{FileName: doc.FileName, Text: doc.Text})
	}

	analyzer := review.NewAnalyzer(review.Options{Concurrency: opts.Concurrency})
	analyses, err := analyzer.AnalyzeBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	var advisorReviews *review.AdvisorAnalyzer
	if opts.Advisor {
		advisor, closeFn, err := newAdvisor(ctx, opts.Provider, opts.APIKey)
		if err != nil {
			return err
		}
		defer closeFn()
		advisorReviews = review.NewAdvisorAnalyzer(advisor)
	}

	names := outputNames(inputs)
	workspace := review.NewWorkspace(analyzer)
	defer workspace.Close()

	printer := observability.NewPrinter(os.Stdout)
	for i, analysis := range analyses {
		report := documentReport{FileName: analysis.Document.FileName}
		suggestions := analysis.Suggestions
		if advisorReviews != nil {
			extra, err := advisorReviews.Suggest(ctx, analysis.Document)
			if err != nil {
				report.AdvisorNote = err.Error()
				_, _ = fmt.Fprintf(os.Stderr, "Warning: advisor suggestions unavailable for %s: %v\n", report.FileName, err)
			} else {
				suggestions = review.Merge(suggestions, extra)
			}
		}

		session := workspace.Adopt(analysis.Document, suggestions)
		if opts.ApproveAll {
			session.ApproveAll()
		}
		report.Suggestions = session.Suggestions()
		report.Summary = session.Summary()

		if opts.Verbose {
			printer.PrintSuggestions(report.Summary, report.Suggestions)
		}
		printer.PrintDecisions(report.Summary)

		if opts.OutDir == "" {
			continue
		}
		if err := writeReviewOutputs(opts.OutDir, names[i], format, session, report); err != nil {
			return err
		}
	}
	return nil
}

// outputNames returns the file name each document's outputs are derived
// from. Names shared by several inputs get a 1-based position prefix.
func outputNames(inputs []review.Input) []string {
	counts := make(map[string]int, len(inputs))
	for _, in := range inputs {
		counts[in.FileName]++
	}
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.FileName
		if counts[in.FileName] > 1 {
			names[i] = fmt.Sprintf("%d-%s", i+1, in.FileName)
		}
	}
	return names
}

func writeReviewOutputs(outDir, name string, format export.Format, session *review.Session, report documentReport) error {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	if err := writeOutput(filepath.Join(outDir, base+".suggestions.json"), data); err != nil {
		return err
	}

	if len(session.Approved()) == 0 {
		return nil
	}
	artifact, err := export.ExportRevision(name, session.Revised(), format)
	if err != nil {
		return fmt.Errorf("failed to export revision of %s: %w", report.FileName, err)
	}
	path := filepath.Join(outDir, artifact.FileName)
	if err := writeOutput(path, artifact.Content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Revised: %s\n", path)
	return nil
}
