package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port      string
	AppName   string
	BodyLimit int // bytes

	// Database (optional — empty selects the in-memory store)
	DatabaseURL string

	// OpenRouter
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	DefaultModel      string

	// GitHub
	GitHubToken  string
	GitHubAPIURL string

	// Exports
	ExportDir            string
	ExportRetentionHours int

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:      envOrDefault("PORT", "3001"),
		AppName:   envOrDefault("APP_NAME", "Gitscribe"),
		BodyLimit: envOrDefaultInt("BODY_LIMIT_BYTES", 10*1024*1024),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: envOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		DefaultModel:      envOrDefault("OPENROUTER_DEFAULT_MODEL", "anthropic/claude-3.5-sonnet"),

		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: envOrDefault("GITHUB_API_URL", "https://api.github.com"),

		ExportDir:            envOrDefault("EXPORT_DIR", "/tmp/gitscribe-exports"),
		ExportRetentionHours: envOrDefaultInt("EXPORT_RETENTION_HOURS", 24),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
