package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"STOREFRONT_API_URL", "STOREFRONT_HTTP_TIMEOUT", "STOREFRONT_RATE_LIMIT_RPS",
	"STOREFRONT_USER_AGENT", "SESSION_STORE", "SESSION_FILE", "SESSION_PROFILE",
	"DB_DSN", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, StoreFile, cfg.SessionStore)
	assert.Equal(t, "default", cfg.SessionProfile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com/api")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "0s")
	t.Setenv("STOREFRONT_RATE_LIMIT_RPS", "2.5")
	t.Setenv("SESSION_STORE", "PG")
	t.Setenv("DB_DSN", "postgres://localhost/storefront")
	t.Setenv("SESSION_PROFILE", "kiosk")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.APIURL)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, StorePG, cfg.SessionStore)
	assert.Equal(t, "kiosk", cfg.SessionProfile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timeout", "STOREFRONT_HTTP_TIMEOUT", "soon"},
		{"negative timeout", "STOREFRONT_HTTP_TIMEOUT", "-1s"},
		{"bad rps", "STOREFRONT_RATE_LIMIT_RPS", "fast"},
		{"unknown store", "SESSION_STORE", "redis"},
		{"pg without dsn", "SESSION_STORE", "pg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("STOREFRONT_API_URL=from_file\nSESSION_PROFILE=from_file\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("SESSION_PROFILE=from_local\nLOG_LEVEL=debug\n"), 0644))

	t.Setenv("STOREFRONT_API_URL", "from_env")
	t.Setenv("SESSION_PROFILE", "")
	require.NoError(t, os.Unsetenv("SESSION_PROFILE"))
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Chdir(tmp)

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("STOREFRONT_API_URL"))
	assert.Equal(t, "from_file", os.Getenv("SESSION_PROFILE"), ".env is loaded before .env.local")
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}
