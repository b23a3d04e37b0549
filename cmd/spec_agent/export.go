package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/spec-customizer/internal/export"
	"github.com/jonathan/spec-customizer/internal/schemas"
	"github.com/jonathan/spec-customizer/internal/types"
	embedded "github.com/jonathan/spec-customizer/schemas"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a generated specification to another format",
	Long:  "Converts a specification JSON file produced by 'synthesize' to LaTeX, markdown, HTML or the JSON document tree. Use 'formats' to list them.",
	RunE:  runExport,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List export formats",
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, info := range export.Formats() {
			_, _ = fmt.Fprintf(os.Stdout, "%-9s %-5s %s\n", info.Format, info.Extension, info.Description)
		}
		return nil
	},
}

var (
	exportSpecFile string
	exportFormat   string
	exportOut      string
)

func init() {
	exportCmd.Flags().StringVarP(&exportSpecFile, "spec", "s", "", "Path to specification JSON file (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Export format (json, latex, markdown, html; pdf and docx are aliases)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to stdout)")

	_ = exportCmd.MarkFlagRequired("spec")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(formatsCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	return exportSpecification(exportSpecFile, exportFormat, exportOut)
}

func exportSpecification(specPath, formatName, out string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("failed to read specification file: %w", err)
	}
	if err := schemas.Validate(embedded.Specification, data); err != nil {
		return fmt.Errorf("invalid specification file %s: %w", specPath, err)
	}
	var spec types.GeneratedSpecification
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal specification JSON: %w", err)
	}

	artifact, err := export.ExportSpecification(&spec, format)
	if err != nil {
		return fmt.Errorf("failed to export specification: %w", err)
	}
	if err := writeOutput(out, artifact.Content); err != nil {
		return err
	}
	if out != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Exported %s: %s\n", format, out)
	}
	return nil
}
