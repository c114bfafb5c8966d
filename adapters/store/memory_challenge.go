package store

import (
	"context"
	"sync"
	"time"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// MemoryChallengeStore is an in-memory challenge store for tests and local
// development. It mirrors the Redis store's behavior: consumption removes
// the record, and expired records are treated as gone.
type MemoryChallengeStore struct {
	challenges map[string]*core.Challenge
	mu         sync.Mutex
}

// NewMemoryChallengeStore creates a new in-memory challenge store
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]*core.Challenge),
	}
}

// Create stores the challenge
func (s *MemoryChallengeStore) Create(ctx context.Context, challenge *core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *challenge
	s.challenges[challenge.ID] = &c
	return nil
}

// Consume removes and returns the challenge. Expired records are deleted
// and reported as not found, matching Redis key expiry.
func (s *MemoryChallengeStore) Consume(ctx context.Context, id string) (*core.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[id]
	if !ok {
		return nil, core.ErrChallengeNotFound
	}
	delete(s.challenges, id)

	if challenge.Expired(time.Now()) {
		return nil, core.ErrChallengeNotFound
	}

	return challenge, nil
}

var _ ports.ChallengeStore = (*MemoryChallengeStore)(nil)
