// Package config provides application configuration from environment variables.
package config

import "os"

// Config holds environment-derived settings. Everything here is optional:
// the per-invocation inputs arrive as CLI flags.
type Config struct {
	LogLevel     string // LOG_LEVEL, defaults to "info"
	GitHubOutput string // GITHUB_OUTPUT, the Actions-provided outputs file
	OTelEnabled  bool   // OTEL_ENABLED feature flag
}

// Load reads configuration from environment variables and applies defaults.
func Load() Config {
	cfg := Config{
		LogLevel:     "info",
		GitHubOutput: os.Getenv("GITHUB_OUTPUT"),
		OTelEnabled:  os.Getenv("OTEL_ENABLED") == "true",
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
