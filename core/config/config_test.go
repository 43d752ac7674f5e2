package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"catalog-recovery/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests that struct tag defaults reach every
// partial config.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.ApiKey)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

// TestLoadConfig_EnvOverride tests that environment variables map onto
// nested keys through the replacer.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_PATH", "/var/lib/cloudimgs/catalog.db")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/var/lib/cloudimgs/catalog.db", cfg.Database.Path)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestLoadConfig_DotEnvFile tests that a .env file next to the config path
// feeds the same pipeline.
func TestLoadConfig_DotEnvFile(t *testing.T) {
	// Register the variable with the test so its prior state is restored.
	t.Setenv("SERVER_API_KEY", "placeholder")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_API_KEY=from-dotenv\n"), 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Server.ApiKey)
}
