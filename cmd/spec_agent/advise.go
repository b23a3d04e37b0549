package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/spec-customizer/internal/ingestion"
	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask the advisory service a question about the project",
	Long:  "Sends a prompt, with optional context text and charter, to the configured advisory provider and prints the reply.",
	RunE:  runAdvise,
}

var (
	advisePrompt   string
	adviseContext  string
	adviseCharter  string
	adviseProvider string
	adviseAPIKey   string
)

func init() {
	adviseCmd.Flags().StringVarP(&advisePrompt, "prompt", "p", "", "Question or instruction (required)")
	adviseCmd.Flags().StringVar(&adviseContext, "context", "", "Additional context text")
	adviseCmd.Flags().StringVarP(&adviseCharter, "charter", "c", "", "Path to charter JSON or YAML file to include as context")
	adviseCmd.Flags().StringVar(&adviseProvider, "provider", "", "Advisory provider: gemini or openai")
	adviseCmd.Flags().StringVar(&adviseAPIKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")

	_ = adviseCmd.MarkFlagRequired("prompt")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	advisor, closeFn, err := newAdvisor(ctx, adviseProvider, adviseAPIKey)
	if err != nil {
		return err
	}
	defer closeFn()

	reply, err := advise(ctx, advisor, advisePrompt, adviseContext, adviseCharter)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, reply)
	return nil
}

func advise(ctx context.Context, advisor *llm.Advisor, prompt, contextText, charterPath string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("--prompt must not be empty")
	}
	if charterPath != "" {
		charter, err := ingestion.LoadCharter(charterPath)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		sb.WriteString(contextText)
		for _, f := range charter.Fields() {
			if f.Present() {
				fmt.Fprintf(&sb, "\n%s: %s", f.Label, f.Joined())
			}
		}
		contextText = strings.TrimSpace(sb.String())
	}

	reply, err := advisor.Respond(ctx, prompt, contextText)
	if err != nil {
		if llm.IsConfiguration(err) {
			return "", fmt.Errorf("advisory service not configured (set GEMINI_API_KEY or OPENAI_API_KEY): %w", err)
		}
		return "", err
	}
	return reply, nil
}
