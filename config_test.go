package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 600, cfg.RateLimitRPM)
	assert.False(t, cfg.UseSecrets)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.DatabaseName)
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg, err := loadConfig(envMap(map[string]string{
		"PORT":            "9000",
		"APP_ENV":         "production",
		"DATABASE_URL":    "mongodb://localhost:27017",
		"DATABASE_NAME":   "sneakers",
		"REDIS_URL":       "redis://localhost:6379/0",
		"CACHE_TTL":       "30s",
		"SEED_DATA_PATH":  "/etc/catalog/seed.yaml",
		"RATE_LIMIT_RPM":  "0",
		"AWS_USE_SECRETS": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, "sneakers", cfg.DatabaseName)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 0, cfg.RateLimitRPM)
	assert.Equal(t, "/etc/catalog/seed.yaml", cfg.SeedDataPath)
	assert.True(t, cfg.UseSecrets)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"PORT": "http"},
		{"CACHE_TTL": "ten minutes"},
		{"CACHE_TTL": "-1m"},
		{"RATE_LIMIT_RPM": "-5"},
		{"RATE_LIMIT_RPM": "lots"},
	} {
		_, err := loadConfig(envMap(env))
		assert.Error(t, err, "%v", env)
	}
}

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{DatabaseURL: "mongodb://env", DatabaseName: "envdb"}
	applySecrets(context.Background(), cfg, fakeSecrets{secretDatabaseURL: "mongodb://secret"})

	assert.Equal(t, "mongodb://secret", cfg.DatabaseURL)
	assert.Equal(t, "envdb", cfg.DatabaseName)
}
