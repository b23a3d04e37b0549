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
	"github.com/jonathan/spec-customizer/internal/synthesis"
	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/spf13/cobra"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Generate Division 01 sections from a project charter",
	Long: `Populates the Division 01 section templates from a charter (JSON or YAML) and writes the generated specification.

With --extract the charter file is treated as free text and converted to a charter by the advisory service first.
Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSynthesize,
}

var (
	synthesizeConfigPath  string
	synthesizeCharterPath string
	synthesizeOut         string
	synthesizeFormat      string
	synthesizeUnresolved  string
	synthesizeExtract     bool
	synthesizeProvider    string
	synthesizeAPIKey      string
	synthesizeVerbose     bool
)

func init() {
	synthesizeCmd.Flags().StringVar(&synthesizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	synthesizeCmd.Flags().StringVarP(&synthesizeCharterPath, "charter", "c", "", "Path to charter JSON or YAML file")
	synthesizeCmd.Flags().StringVarP(&synthesizeOut, "out", "o", "", "Output file (defaults to stdout)")
	synthesizeCmd.Flags().StringVarP(&synthesizeFormat, "format", "f", "", "Export format (json, latex, markdown, html); empty writes the specification JSON")
	synthesizeCmd.Flags().StringVar(&synthesizeUnresolved, "unresolved", "", "Unresolved placeholder policy: keep or sentinel")
	synthesizeCmd.Flags().BoolVar(&synthesizeExtract, "extract", false, "Extract the charter from free text with the advisory service")
	synthesizeCmd.Flags().StringVar(&synthesizeProvider, "provider", "", "Advisory provider: gemini or openai")
	synthesizeCmd.Flags().StringVar(&synthesizeAPIKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	synthesizeCmd.Flags().BoolVarP(&synthesizeVerbose, "verbose", "v", false, "Print a summary of the generated sections and tips")

	rootCmd.AddCommand(synthesizeCmd)
}

type synthesizeOptions struct {
	Charter    string
	Out        string
	Format     string
	Unresolved string
	Extract    bool
	Provider   string
	APIKey     string
	Verbose    bool
}

func runSynthesize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile(synthesizeConfigPath)
	if err != nil {
		return err
	}

	opts := synthesizeOptions{
		Charter:    stringFlag(cmd, "charter", synthesizeCharterPath, cfg.Charter),
		Out:        synthesizeOut,
		Format:     stringFlag(cmd, "format", synthesizeFormat, cfg.Format),
		Unresolved: stringFlag(cmd, "unresolved", synthesizeUnresolved, cfg.Unresolved),
		Extract:    synthesizeExtract,
		Provider:   stringFlag(cmd, "provider", synthesizeProvider, cfg.Provider),
		APIKey:     stringFlag(cmd, "api-key", synthesizeAPIKey, cfg.APIKey),
		Verbose:    synthesizeVerbose || cfg.Verbose,
	}
	if opts.Charter == "" {
		return fmt.Errorf("--charter is required (or set 'charter' in --config)")
	}
	return synthesizeCharter(cmd.Context(), opts)
}

func synthesizeCharter(ctx context.Context, opts synthesizeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	charter, err := loadCharterInput(ctx, opts)
	if err != nil {
		return err
	}

	policy := synthesis.KeepPlaceholder
	if strings.EqualFold(opts.Unresolved, string(synthesis.UseSentinel)) {
		policy = synthesis.UseSentinel
	}
	spec := synthesis.New(synthesis.Options{Unresolved: policy}).Synthesize(charter, filepath.Base(opts.Charter))

	if opts.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintSpecification(spec)
		printer.PrintTips(spec.Tips)
	}

	var data []byte
	if opts.Format == "" {
		data, err = json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal specification: %w", err)
		}
		data = append(data, '\n')
	} else {
		format, err := export.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		artifact, err := export.ExportSpecification(spec, format)
		if err != nil {
			return fmt.Errorf("failed to export specification: %w", err)
		}
		data = artifact.Content
	}

	if err := writeOutput(opts.Out, data); err != nil {
		return err
	}
	if opts.Out != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Generated %d sections (%d%% complete, %d tips)\n",
			len(spec.Sections), spec.Metadata.Completeness, len(spec.Tips))
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", opts.Out)
	}
	return nil
}

func loadCharterInput(ctx context.Context, opts synthesizeOptions) (*types.Charter, error) {
	if !opts.Extract {
		return ingestion.LoadCharter(opts.Charter)
	}

	doc, err := ingestion.LoadFile(opts.Charter)
	if err != nil {
		return nil, err
	}
	advisor, closeFn, err := newAdvisor(ctx, opts.Provider, opts.APIKey)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return ingestion.ExtractCharter(ctx, advisor, doc.FileName, doc.Text)
}
