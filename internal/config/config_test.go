package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "REDIS_URL", "LOG_LEVEL", "OTLP_ENDPOINT", "OTLP_INSECURE",
		"CACHE_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Setenv("POSTGRES_URL", "postgres://localhost/itinera")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONFIG_FILE", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_EnvValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("OTLP_INSECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, ,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CONFIG_FILE", writeConfig(t, "port: \"7070\"\nredis_url: redis://cache:6379/0\nlog_level: debug\n"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnknownFileKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONFIG_FILE", writeConfig(t, "prot: \"7070\"\n"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "postgres_url")
}

func TestLoad_BadValues(t *testing.T) {
	cases := map[string]string{
		"CACHE_TTL":        "soon",
		"RATE_LIMIT_RPS":   "-1",
		"RATE_LIMIT_BURST": "many",
		"LOG_LEVEL":        "loud",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
