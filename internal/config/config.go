package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Hasher selection values for PASSWORD_HASHER.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type Config struct {
	Env             string
	MaxAttempts     int
	LockoutDuration time.Duration
	MetricsPort     int
	PasswordHasher  string
	SessionSecret   string
	SessionTTL      time.Duration
	SeedDemo        bool
}

// MustLoad loads the configuration or panics. Intended for main only.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Every knob has a default, so an empty environment
// yields a runnable demo setup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             envOrDefault("APP_ENV", "local"),
		MaxAttempts:     envIntOrDefault("LOGIN_MAX_ATTEMPTS", 3),
		LockoutDuration: envSecondsOrDefault("LOGIN_LOCK_SECONDS", 20),
		MetricsPort:     envIntOrDefault("METRICS_PORT", 9090),
		PasswordHasher:  envOrDefault("PASSWORD_HASHER", HasherSHA256),
		SessionSecret:   envOrDefault("SESSION_SECRET", "dev-only-secret"),
		SessionTTL:      envMinutesOrDefault("SESSION_TTL_MINUTES", 60),
		SeedDemo:        envBoolOrDefault("SEED_DEMO_ACCOUNTS", true),
	}

	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("config: LOGIN_MAX_ATTEMPTS must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.LockoutDuration <= 0 {
		return nil, fmt.Errorf("config: LOGIN_LOCK_SECONDS must be positive")
	}
	if cfg.PasswordHasher != HasherSHA256 && cfg.PasswordHasher != HasherBcrypt {
		return nil, fmt.Errorf("config: unknown PASSWORD_HASHER %q", cfg.PasswordHasher)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return parsed
}

func envBoolOrDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return parsed
}

func envSecondsOrDefault(key string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(key, fallback)) * time.Second
}

func envMinutesOrDefault(key string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(key, fallback)) * time.Minute
}
