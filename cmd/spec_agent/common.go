package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/spec-customizer/internal/config"
	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/spf13/cobra"
)

// loadConfigFile reads and validates an optional --config file.
func loadConfigFile(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// stringFlag returns the flag value when it was set explicitly, else fallback.
func stringFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) || fallback == "" {
		return value
	}
	return fallback
}

// newAdvisor builds an advisor for the provider. A missing API key yields an
// unconfigured advisor whose calls report a configuration error.
func newAdvisor(ctx context.Context, provider, apiKey string) (*llm.Advisor, func(), error) {
	p, err := llm.ParseProvider(provider)
	if err != nil {
		return nil, nil, err
	}
	if apiKey == "" {
		apiKey = config.APIKeyFromEnv(string(p))
	}
	if apiKey == "" {
		return llm.NewAdvisor(nil, llm.AdvisorOptions{Provider: p}), func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.ConfigForProvider(p), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s client: %w", p, err)
	}
	closeFn := func() { _ = client.Close() }
	return llm.NewAdvisor(client, llm.AdvisorOptions{Provider: p}), closeFn, nil
}

// writeOutput writes data to path, creating parent directories. An empty path writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
