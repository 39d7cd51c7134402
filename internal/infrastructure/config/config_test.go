package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  port: 9090
  allowed_origins:
    - http://localhost:4000
storage:
  database_path: sessions.db
observability:
  logging:
    level: debug
    format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:4000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sessions.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("SPENDLENS_DB_PATH", "from-env.db")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  database_path: ${SPENDLENS_DB_PATH}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Storage.DatabasePath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPENDLENS_DB_PATH", "test.db")
	t.Setenv("SPENDLENS_PORT", "7070")
	t.Setenv("SPENDLENS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadFromEnv()

	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"SPENDLENS_DB_PATH", "SPENDLENS_PORT", "SPENDLENS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := LoadFromEnv()

	assert.Equal(t, "spendlens.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "text", cfg.Observability.Logging.Format)
}

func TestLoadOrEnvWithPath_MissingFileFallsBack(t *testing.T) {
	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
}
