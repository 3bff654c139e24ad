package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	awspkg "catalog-service/pkg/aws"

	"go.uber.org/zap"
)

const (
	secretDatabaseURL  = "catalog/DATABASE_URL"
	secretDatabaseName = "catalog/DATABASE_NAME"
)

// Config holds all environment settings of the catalog service.
type Config struct {
	Port         string        // PORT, default 8000
	Env          string        // APP_ENV, default development
	DatabaseURL  string        // DATABASE_URL, empty runs without a database
	DatabaseName string        // DATABASE_NAME
	RedisURL     string        // REDIS_URL, empty disables the response cache
	CacheTTL     time.Duration // CACHE_TTL, default 10m
	SeedDataPath string        // SEED_DATA_PATH, YAML dataset replacing the built-in one
	RateLimitRPM int           // RATE_LIMIT_RPM, 0 disables rate limiting
	UseSecrets   bool          // AWS_USE_SECRETS
}

type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads the environment into Config and validates it. With
// AWS_USE_SECRETS=true the database settings are read from Secrets Manager,
// keeping the environment values when a secret cannot be fetched.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return nil, err
	}

	if cfg.UseSecrets {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			zap.L().Warn("Secrets Manager unavailable, using environment", zap.Error(err))
			return cfg, nil
		}
		applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg))
	}

	return cfg, nil
}

func loadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         envOr(getenv, "PORT", "8000"),
		Env:          envOr(getenv, "APP_ENV", "development"),
		DatabaseURL:  getenv("DATABASE_URL"),
		DatabaseName: getenv("DATABASE_NAME"),
		RedisURL:     getenv("REDIS_URL"),
		SeedDataPath: getenv("SEED_DATA_PATH"),
		UseSecrets:   getenv("AWS_USE_SECRETS") == "true",
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be a number, got %q", cfg.Port)
	}

	ttl, err := time.ParseDuration(envOr(getenv, "CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", getenv("CACHE_TTL"))
	}
	cfg.CacheTTL = ttl

	rpm, err := strconv.Atoi(envOr(getenv, "RATE_LIMIT_RPM", "600"))
	if err != nil || rpm < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPM must be a non-negative number, got %q", getenv("RATE_LIMIT_RPM"))
	}
	cfg.RateLimitRPM = rpm

	return cfg, nil
}

func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if url, err := sm.GetSecret(ctx, secretDatabaseURL); err == nil && url != "" {
		cfg.DatabaseURL = url
	} else if err != nil {
		zap.L().Warn("Failed to read secret", zap.String("secret", secretDatabaseURL), zap.Error(err))
	}
	if name, err := sm.GetSecret(ctx, secretDatabaseName); err == nil && name != "" {
		cfg.DatabaseName = name
	} else if err != nil {
		zap.L().Warn("Failed to read secret", zap.String("secret", secretDatabaseName), zap.Error(err))
	}
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
