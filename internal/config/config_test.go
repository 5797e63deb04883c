package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MXBCASH_PORT",
		"MXBCASH_DB_PATH",
		"MXBCASH_REPORTING_CURRENCY",
		"MXBCASH_SEED_FILE",
		"MXBCASH_DEBUG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/mxbcash.db", cfg.DBPath)
	assert.Equal(t, "USD", cfg.ReportingCurrency)
	assert.Empty(t, cfg.SeedFile)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MXBCASH_PORT", "9090")
	t.Setenv("MXBCASH_DB_PATH", "/tmp/ledger.db")
	t.Setenv("MXBCASH_REPORTING_CURRENCY", "EUR")
	t.Setenv("MXBCASH_SEED_FILE", "chart.yaml")
	t.Setenv("MXBCASH_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/ledger.db", cfg.DBPath)
	assert.Equal(t, "EUR", cfg.ReportingCurrency)
	assert.Equal(t, "chart.yaml", cfg.SeedFile)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvFile(t *testing.T) {
	for _, key := range []string{"MXBCASH_PORT", "MXBCASH_REPORTING_CURRENCY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MXBCASH_PORT=7070\nMXBCASH_REPORTING_CURRENCY=GBP\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "GBP", cfg.ReportingCurrency)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("MXBCASH_TEST_KEY", "value")
	assert.Equal(t, "value", getEnvOrDefault("MXBCASH_TEST_KEY", "fallback"))

	t.Setenv("MXBCASH_TEST_KEY", "")
	assert.Equal(t, "fallback", getEnvOrDefault("MXBCASH_TEST_KEY", "fallback"))
}
