// Package config loads process-wide configuration from the environment,
// once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding variable is unset
const (
	DefaultListenAddr   = ":8080"
	DefaultRedisURL     = "redis://localhost:6379/0"
	DefaultDatabaseURL  = "postgres://localhost:5432/chainpost?sslmode=disable"
	DefaultChallengeTTL = 15 * time.Minute
	DefaultSessionTTL   = 24 * time.Hour
)

// Config holds all runtime configuration
type Config struct {
	ListenAddr   string
	RedisURL     string
	DatabaseURL  string
	JWTSecret    []byte
	ChallengeTTL time.Duration
	SessionTTL   time.Duration
}

// Load reads configuration from the environment. JWT_SECRET is required;
// everything else falls back to a default. TTLs are given in seconds.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	challengeTTL, err := ttlFromEnv("CHALLENGE_TTL", DefaultChallengeTTL)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := ttlFromEnv("SESSION_TTL", DefaultSessionTTL)
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenAddr:   envOr("LISTEN_ADDR", DefaultListenAddr),
		RedisURL:     envOr("REDIS_URL", DefaultRedisURL),
		DatabaseURL:  envOr("DATABASE_URL", DefaultDatabaseURL),
		JWTSecret:    []byte(secret),
		ChallengeTTL: challengeTTL,
		SessionTTL:   sessionTTL,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ttlFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds, got %q", key, v)
	}
	return time.Duration(seconds) * time.Second, nil
}
