package cmd

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguredLogLevel(t *testing.T) {
	t.Setenv("MXBCASH_DEBUG", "")
	require.NoError(t, os.Unsetenv("MXBCASH_DEBUG"))
	debug = false

	assert.Equal(t, slog.LevelInfo, configuredLogLevel())

	// MXBCASH_DEBUG enables debug logging without the flag.
	t.Setenv("MXBCASH_DEBUG", "true")
	assert.Equal(t, slog.LevelDebug, configuredLogLevel())

	t.Setenv("MXBCASH_DEBUG", "false")
	assert.Equal(t, slog.LevelInfo, configuredLogLevel())

	// The flag wins regardless of the environment.
	debug = true
	t.Cleanup(func() { debug = false })
	assert.Equal(t, slog.LevelDebug, configuredLogLevel())
}

func TestLoadConfigHonorsDebugSources(t *testing.T) {
	t.Setenv("MXBCASH_DEBUG", "true")
	debug = false

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	t.Setenv("MXBCASH_DEBUG", "")
	require.NoError(t, os.Unsetenv("MXBCASH_DEBUG"))
	debug = true
	t.Cleanup(func() { debug = false })

	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}
