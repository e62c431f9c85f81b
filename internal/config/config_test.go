package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
backend:
  base_url: "http://backend:8000/"
  timeout_seconds: 15
  default_collection: "econ101"
upload:
  max_file_mb: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, "econ101", cfg.Backend.DefaultCollection)
	assert.Equal(t, "Anonymous", cfg.Backend.AnonymousUser)
	assert.Equal(t, int64(2<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 60, cfg.Session.IdleMinutes)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: \"http://file\"\n")
	t.Setenv("TA_BACKEND_BASE_URL", "http://env:1234")
	t.Setenv("TA_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:1234", cfg.Backend.BaseURL)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout())
	assert.Equal(t, "default", cfg.Backend.DefaultCollection)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
