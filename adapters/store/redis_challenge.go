package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// RedisChallengeStore persists challenges in Redis. Key TTLs garbage-collect
// expired challenges, and GETDEL makes consumption atomic: of two concurrent
// login attempts presenting the same challenge id, exactly one gets the
// record.
type RedisChallengeStore struct {
	client *redis.Client
	prefix string
}

type challengeRecord struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Chain     string    `json:"chain"`
	Nonce     string    `json:"nonce"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewRedisChallengeStore creates a Redis-backed challenge store
func NewRedisChallengeStore(client *redis.Client) ports.ChallengeStore {
	return &RedisChallengeStore{
		client: client,
		prefix: "vouch:challenge:",
	}
}

// Create stores the challenge under a key that expires with the challenge
func (s *RedisChallengeStore) Create(ctx context.Context, challenge *core.Challenge) error {
	payload, err := json.Marshal(challengeRecord{
		ID:        challenge.ID,
		Address:   challenge.Address,
		Chain:     challenge.Chain.String(),
		Nonce:     challenge.Nonce,
		IssuedAt:  challenge.IssuedAt,
		ExpiresAt: challenge.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return core.ErrChallengeExpired
	}

	if err := s.client.Set(ctx, s.prefix+challenge.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	return nil
}

// Consume fetches and deletes the challenge in a single round trip
func (s *RedisChallengeStore) Consume(ctx context.Context, id string) (*core.Challenge, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}

	var rec challengeRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return &core.Challenge{
		ID:        rec.ID,
		Address:   rec.Address,
		Chain:     core.Chain(rec.Chain),
		Nonce:     rec.Nonce,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}
