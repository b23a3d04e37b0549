package main

import (
	"fmt"

	"github.com/jonathan/spec-customizer/internal/config"
	"github.com/jonathan/spec-customizer/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for synthesis, review and the advisory service.

DATABASE_URL enables persistence; without it state is kept in memory. JWT_SECRET protects mutating routes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		serverCfg.Port = servePort
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:        serverCfg.Port,
		DatabaseURL: serverCfg.DatabaseURL,
		Provider:    serverCfg.Provider,
		APIKey:      serverCfg.APIKey,
		JWT:         serverCfg.JWT,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
