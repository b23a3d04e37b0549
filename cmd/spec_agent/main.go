// Package main provides the spec_agent CLI and HTTP API server for
// Division 01 specification synthesis and review.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spec_agent",
	Short: "Division 01 specification synthesis and review",
	Long:  "spec_agent generates CSI MasterFormat Division 01 sections from a project charter and reviews existing specification text for outdated or non-compliant language.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
