package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chainpost/vouch/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, config.DefaultRedisURL, cfg.RedisURL)
	require.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	require.Equal(t, config.DefaultChallengeTTL, cfg.ChallengeTTL)
	require.Equal(t, config.DefaultSessionTTL, cfg.SessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("CHALLENGE_TTL", "60")
	t.Setenv("SESSION_TTL", "3600")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.ListenAddr)
	require.Equal(t, time.Minute, cfg.ChallengeTTL)
	require.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CHALLENGE_TTL", "soon")

	_, err := config.Load()
	require.Error(t, err)
}
