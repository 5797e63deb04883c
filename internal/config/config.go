// Package config provides configuration management for the ledger server.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Port              string
	DBPath            string
	ReportingCurrency string
	SeedFile          string
	Debug             bool
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available. You can
// optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Port:              getEnvOrDefault("MXBCASH_PORT", "8080"),
		DBPath:            getEnvOrDefault("MXBCASH_DB_PATH", "./data/mxbcash.db"),
		ReportingCurrency: getEnvOrDefault("MXBCASH_REPORTING_CURRENCY", "USD"),
		SeedFile:          os.Getenv("MXBCASH_SEED_FILE"),
		Debug:             os.Getenv("MXBCASH_DEBUG") == "true",
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
