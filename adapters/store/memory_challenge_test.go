package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chainpost/vouch/adapters/store"
	"github.com/chainpost/vouch/core"
)

func newChallenge(ttl time.Duration) *core.Challenge {
	now := time.Now()
	return &core.Challenge{
		ID:        uuid.NewString(),
		Address:   "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		Chain:     core.ChainEthereum,
		Nonce:     "deadbeef",
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryChallengeStoreSingleUse(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryChallengeStore()

	challenge := newChallenge(time.Minute)
	require.NoError(t, s.Create(ctx, challenge))

	got, err := s.Consume(ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, challenge.ID, got.ID)
	require.Equal(t, challenge.Nonce, got.Nonce)
	require.Equal(t, challenge.Chain, got.Chain)

	_, err = s.Consume(ctx, challenge.ID)
	require.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryChallengeStoreUnknownID(t *testing.T) {
	s := store.NewMemoryChallengeStore()

	_, err := s.Consume(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryChallengeStoreExpired(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryChallengeStore()

	challenge := newChallenge(-time.Minute)
	require.NoError(t, s.Create(ctx, challenge))

	_, err := s.Consume(ctx, challenge.ID)
	require.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryChallengeStoreConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryChallengeStore()

	challenge := newChallenge(time.Minute)
	require.NoError(t, s.Create(ctx, challenge))

	const attempts = 16
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Consume(ctx, challenge.ID); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	require.Len(t, successes, 1)
}
