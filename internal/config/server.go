package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPort is used when neither --port nor PORT is set.
const DefaultPort = 8080

// ServerConfig holds environment-derived settings for the HTTP API.
type ServerConfig struct {
	Port        int
	DatabaseURL string // empty keeps everything in memory
	Provider    string
	APIKey      string
	JWT         *JWTConfig // nil disables authentication
}

// LoadServerConfig reads PORT, DATABASE_URL, LLM_PROVIDER, the provider's
// API key variable and the optional JWT settings.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:        DefaultPort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Provider:    strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
	}
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	cfg.APIKey = APIKeyFromEnv(cfg.Provider)

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", portStr)
		}
		cfg.Port = port
	}

	jwtCfg, err := OptionalJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwtCfg
	return cfg, nil
}

// APIKeyFromEnv returns the API key variable for a provider.
func APIKeyFromEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
